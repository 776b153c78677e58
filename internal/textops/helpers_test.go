package textops

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// recordedRequest captures what a mock service received.
type recordedRequest struct {
	Path    string
	Version string
	APIKey  string
	Body    map[string]interface{}
}

// mockService answers every request with status and body and records requests.
func mockService(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest, *int32) {
	t.Helper()
	var hits int32
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]interface{}
		json.Unmarshal(raw, &decoded)
		_, key, _ := r.BasicAuth()
		requests = append(requests, recordedRequest{
			Path:    r.URL.Path,
			Version: r.URL.Query().Get("version"),
			APIKey:  key,
			Body:    decoded,
		})
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests, &hits
}

func testOptions(url, param string) Options {
	return Options{
		Service: ServiceConfig{APIKey: "test-key", URL: url, Version: "2019-02-28"},
		Param:   param,
		Logger:  zerolog.Nop(),
	}
}
