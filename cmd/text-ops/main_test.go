package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestRun_UnsupportedKind(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"foo", "--env-file="}, strings.NewReader("text"), &stdout, &stderr)

	if code == 0 {
		t.Error("expected nonzero exit status")
	}
	if stdout.Len() != 0 {
		t.Errorf("no output expected, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "unsupported operation mode: foo") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr.String())
	}
}

func TestRun_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentiment":{"document":{"score":0.5,"label":"positive"}}}`))
	}))
	defer server.Close()

	t.Setenv("TEXTOPS_NLU_APIKEY", "k")
	t.Setenv("TEXTOPS_NLU_URL", server.URL)
	t.Setenv("TEXTOPS_LOG_LEVEL", "warn")
	t.Setenv("TEXTOPS_TIMEOUT", "")
	os.Unsetenv("TEXTOPS_TIMEOUT")

	var stdout, stderr bytes.Buffer
	code := run([]string{"sentiment_analysis", "--env-file="}, strings.NewReader("good"), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if stdout.String() != "score: 0.50000 | label: positive\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestRun_RemoteFailureJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	t.Setenv("TEXTOPS_TRANSLATOR_APIKEY", "k")
	t.Setenv("TEXTOPS_TRANSLATOR_URL", server.URL)
	t.Setenv("TEXTOPS_LOG_LEVEL", "warn")

	var stdout, stderr bytes.Buffer
	code := run([]string{"translate", "--oper-param", "fr", "--json", "--env-file="}, strings.NewReader("hi"), &stdout, &stderr)

	if code == 0 {
		t.Error("expected nonzero exit status")
	}
	var result map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("expected JSON error on stdout, got %q", stdout.String())
	}
	if result["error"] != true {
		t.Errorf("unexpected error payload %v", result)
	}
}
