package nlapi

import (
	"context"
	"fmt"
)

// TranslatePath is the translation endpoint relative to the service URL.
const TranslatePath = "/v3/translate"

// TranslateRequest is the body of a translation call.
type TranslateRequest struct {
	Text    []string `json:"text"`
	ModelID string   `json:"model_id"`
}

// ModelID names the model pairing for a source and target language.
func ModelID(source, target string) string {
	return source + "-" + target
}

// Translate translates text with the given model and returns the first
// translation candidate verbatim.
func (c *Client) Translate(ctx context.Context, text, modelID string) (string, error) {
	doc, err := c.Post(ctx, TranslatePath, TranslateRequest{
		Text:    []string{text},
		ModelID: modelID,
	})
	if err != nil {
		return "", err
	}

	candidate, err := Field(doc, "translations.0.translation")
	if err != nil {
		return "", fmt.Errorf("no translations in response: %w", err)
	}
	return candidate.String(), nil
}
