package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samestrin/text-ops/internal/testhelpers"
	"github.com/samestrin/text-ops/internal/textops"
)

// clearEnv unsets every variable Load reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TRANSLATOR_APIKEY", "TRANSLATOR_URL", "NLU_APIKEY", "NLU_URL",
		"API_VERSION", "TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		key := EnvPrefix + "_" + name
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TranslatorURL != DefaultTranslatorURL {
		t.Errorf("TranslatorURL = %s", cfg.TranslatorURL)
	}
	if cfg.NLUURL != DefaultNLUURL {
		t.Errorf("NLUURL = %s", cfg.NLUURL)
	}
	if cfg.APIVersion != "2019-02-28" {
		t.Errorf("APIVersion = %s", cfg.APIVersion)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.TranslatorAPIKey != "" || cfg.NLUAPIKey != "" {
		t.Error("credentials must not have defaults")
	}
}

func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTOPS_TRANSLATOR_APIKEY", "tr-key")
	t.Setenv("TEXTOPS_NLU_APIKEY", "nlu-key")
	t.Setenv("TEXTOPS_NLU_URL", "https://nlu.example.com/api")
	t.Setenv("TEXTOPS_API_VERSION", "2022-04-07")
	t.Setenv("TEXTOPS_TIMEOUT", "15s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TranslatorAPIKey != "tr-key" || cfg.NLUAPIKey != "nlu-key" {
		t.Errorf("unexpected keys %q %q", cfg.TranslatorAPIKey, cfg.NLUAPIKey)
	}
	if cfg.NLUURL != "https://nlu.example.com/api" {
		t.Errorf("NLUURL = %s", cfg.NLUURL)
	}
	if cfg.APIVersion != "2022-04-07" {
		t.Errorf("APIVersion = %s", cfg.APIVersion)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestLoad_InvalidEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEXTOPS_TIMEOUT", "soon")

	_, err := Load("")
	var opErr *textops.Error
	if !errors.As(err, &opErr) || opErr.Type != textops.ErrTypeConfiguration {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestLoad_IgnoresUnprefixedVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEOUT", "30")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("NLU_APIKEY", "someone-elses-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timeout != Defaults().Timeout {
		t.Errorf("Timeout = %s, want default", cfg.Timeout)
	}
	if cfg.LogLevel != "" || cfg.NLUAPIKey != "" {
		t.Errorf("unprefixed variables leaked into config: level=%q key=%q", cfg.LogLevel, cfg.NLUAPIKey)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := testhelpers.WriteTempFile(t, "textops.yaml", `
other:
  ignored: true
textops:
  translator_apikey: file-tr
  nlu_apikey: file-nlu
  translator_url: https://tr.example.com/api
  timeout: 45s
  log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TranslatorAPIKey != "file-tr" || cfg.NLUAPIKey != "file-nlu" {
		t.Errorf("unexpected keys %q %q", cfg.TranslatorAPIKey, cfg.NLUAPIKey)
	}
	if cfg.TranslatorURL != "https://tr.example.com/api" {
		t.Errorf("TranslatorURL = %s", cfg.TranslatorURL)
	}
	if cfg.NLUURL != DefaultNLUURL {
		t.Errorf("NLUURL should keep its default, got %s", cfg.NLUURL)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	path := testhelpers.WriteTempFile(t, "textops.toml", `
[textops]
translator_apikey = "toml-tr"
nlu_apikey = "toml-nlu"
api_version = "2020-01-01"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TranslatorAPIKey != "toml-tr" || cfg.NLUAPIKey != "toml-nlu" {
		t.Errorf("unexpected keys %q %q", cfg.TranslatorAPIKey, cfg.NLUAPIKey)
	}
	if cfg.APIVersion != "2020-01-01" {
		t.Errorf("APIVersion = %s", cfg.APIVersion)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := testhelpers.WriteTempFile(t, "textops.yml", "textops:\n  nlu_apikey: from-file\n  translator_apikey: tr-file\n")
	t.Setenv("TEXTOPS_NLU_APIKEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NLUAPIKey != "from-env" {
		t.Errorf("env should win over file, got %s", cfg.NLUAPIKey)
	}
	if cfg.TranslatorAPIKey != "tr-file" {
		t.Errorf("file value should remain when env unset, got %s", cfg.TranslatorAPIKey)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("  \n"), 0644)
	badYAML := filepath.Join(dir, "bad.yaml")
	os.WriteFile(badYAML, []byte("textops:\n  nlu_apikey: [unclosed\n"), 0644)
	badTOML := filepath.Join(dir, "bad.toml")
	os.WriteFile(badTOML, []byte("[textops\nnlu_apikey = 1"), 0644)
	badTimeout := filepath.Join(dir, "timeout.yaml")
	os.WriteFile(badTimeout, []byte("textops:\n  timeout: forever\n"), 0644)

	tests := []struct {
		name     string
		path     string
		contains string
	}{
		{"blank path", "   ", "cannot be empty"},
		{"unknown extension", filepath.Join(dir, "cfg.json"), "unsupported config file format"},
		{"missing file", filepath.Join(dir, "missing.yaml"), "not found"},
		{"empty file", empty, "empty"},
		{"bad yaml", badYAML, "invalid yaml syntax"},
		{"bad toml", badTOML, "invalid toml syntax"},
		{"bad timeout", badTimeout, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := testhelpers.WriteTempFile(t, ".env", "TEXTOPS_NLU_APIKEY=dotenv-key\nTEXTOPS_TRANSLATOR_APIKEY=dotenv-tr\n")
	t.Setenv("TEXTOPS_TRANSLATOR_APIKEY", "process-tr")

	loaded, err := LoadEnvFile(path, true)
	if err != nil || !loaded {
		t.Fatalf("LoadEnvFile = %v, %v", loaded, err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NLUAPIKey != "dotenv-key" {
		t.Errorf("expected key from .env, got %q", cfg.NLUAPIKey)
	}
	if cfg.TranslatorAPIKey != "process-tr" {
		t.Errorf("process environment should win over .env, got %q", cfg.TranslatorAPIKey)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	loaded, err := LoadEnvFile(missing, false)
	if err != nil || loaded {
		t.Errorf("implicit missing .env should be skipped, got %v, %v", loaded, err)
	}

	if _, err := LoadEnvFile(missing, true); err == nil {
		t.Error("explicit missing .env should fail")
	}
}

func TestService_Binding(t *testing.T) {
	cfg := Defaults()
	cfg.TranslatorAPIKey = "tr-key"
	cfg.NLUAPIKey = "nlu-key"

	tests := []struct {
		kind    textops.Kind
		wantKey string
		wantURL string
	}{
		{textops.KindTranslate, "tr-key", DefaultTranslatorURL},
		{textops.KindSentiment, "nlu-key", DefaultNLUURL},
		{textops.KindEntities, "nlu-key", DefaultNLUURL},
	}

	for _, tt := range tests {
		svc, err := cfg.Service(tt.kind)
		if err != nil {
			t.Fatalf("Service(%s) failed: %v", tt.kind, err)
		}
		if svc.APIKey != tt.wantKey || svc.URL != tt.wantURL {
			t.Errorf("Service(%s) = %+v", tt.kind, svc)
		}
		if svc.Version != "2019-02-28" || svc.Timeout != 120*time.Second {
			t.Errorf("Service(%s) lost version or timeout: %+v", tt.kind, svc)
		}
	}
}

func TestService_MissingCredential(t *testing.T) {
	cfg := Defaults()
	cfg.NLUAPIKey = "nlu-key"

	_, err := cfg.Service(textops.KindTranslate)
	var opErr *textops.Error
	if !errors.As(err, &opErr) || opErr.Type != textops.ErrTypeConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(opErr.Hint, TranslatorAPIKeyEnv) {
		t.Errorf("hint should name %s, got %q", TranslatorAPIKeyEnv, opErr.Hint)
	}
}

func TestResolveValue(t *testing.T) {
	if got := ResolveValue(" x ", "y"); got != "x" {
		t.Errorf("got %q", got)
	}
	if got := ResolveValue("  ", "y"); got != "y" {
		t.Errorf("got %q", got)
	}
}
