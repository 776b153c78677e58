// Package nlapi provides a JSON-over-HTTPS client for hosted natural-language
// services: a machine translation endpoint and a language-understanding
// endpoint. Both services authenticate with a per-service API key and require
// a protocol version identifier on every request.
package nlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultVersion is the protocol version sent when none is configured.
const DefaultVersion = "2019-02-28"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 120 * time.Second

// apiKeyUser is the basic-auth user name paired with an API key.
const apiKeyUser = "apikey"

// Client calls one hosted service. It performs exactly one HTTP round trip per
// call and never retries.
type Client struct {
	APIKey     string
	BaseURL    string
	Version    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(apiKey, baseURL, version string, timeout time.Duration) *Client {
	if version == "" {
		version = DefaultVersion
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Version: version,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
	Code       int
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Endpoint returns the full URL for path, including the version query parameter.
func (c *Client) Endpoint(path string) (string, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid service URL %q: %w", c.BaseURL, err)
	}
	q := u.Query()
	q.Set("version", c.Version)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Post sends payload as JSON to path and returns the parsed response document.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (gjson.Result, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint, err := c.Endpoint(path)
	if err != nil {
		return gjson.Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(apiKeyUser, c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, decodeAPIError(resp.StatusCode, body)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("failed to parse response: invalid JSON")
	}
	return gjson.ParseBytes(body), nil
}

// decodeAPIError understands both {"error": "msg", "code": 400} and
// {"error": {"message": "msg"}} bodies.
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		errField := doc.Get("error")
		switch {
		case errField.Type == gjson.String:
			apiErr.Message = errField.String()
		case errField.IsObject():
			apiErr.Message = errField.Get("message").String()
		}
		apiErr.Code = int(doc.Get("code").Int())
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
