// Package config resolves the credentials and endpoints of the hosted services.
// Every setting is taken from the environment first, then from an optional
// YAML or TOML file, then from built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samestrin/text-ops/internal/textops"
	"github.com/samestrin/text-ops/pkg/nlapi"
)

// EnvPrefix prefixes every environment variable this package reads.
const EnvPrefix = "TEXTOPS"

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

const (
	DefaultTranslatorURL = "https://gateway-lon.watsonplatform.net/language-translator/api"
	DefaultNLUURL        = "https://gateway-lon.watsonplatform.net/natural-language-understanding/api"
)

// Environment variable names for the credentials, used in hints.
const (
	TranslatorAPIKeyEnv = EnvPrefix + "_TRANSLATOR_APIKEY"
	NLUAPIKeyEnv        = EnvPrefix + "_NLU_APIKEY"
)

// Config is the resolved configuration.
type Config struct {
	TranslatorAPIKey string
	TranslatorURL    string
	NLUAPIKey        string
	NLUURL           string
	APIVersion       string
	Timeout          time.Duration
	LogLevel         string
	LogFormat        string
}

// FileConfig is the "textops" section of a config file.
type FileConfig struct {
	TranslatorAPIKey string `yaml:"translator_apikey" toml:"translator_apikey"`
	TranslatorURL    string `yaml:"translator_url" toml:"translator_url"`
	NLUAPIKey        string `yaml:"nlu_apikey" toml:"nlu_apikey"`
	NLUURL           string `yaml:"nlu_url" toml:"nlu_url"`
	APIVersion       string `yaml:"api_version" toml:"api_version"`
	Timeout          string `yaml:"timeout" toml:"timeout"`
	LogLevel         string `yaml:"log_level" toml:"log_level"`
	LogFormat        string `yaml:"log_format" toml:"log_format"`
}

// envSettings is decoded from TEXTOPS_* variables. Empty means unset. Tags
// carry the full name and Process runs without a prefix, so unrelated bare
// names such as TIMEOUT are never read.
type envSettings struct {
	TranslatorAPIKey string        `envconfig:"TEXTOPS_TRANSLATOR_APIKEY"`
	TranslatorURL    string        `envconfig:"TEXTOPS_TRANSLATOR_URL"`
	NLUAPIKey        string        `envconfig:"TEXTOPS_NLU_APIKEY"`
	NLUURL           string        `envconfig:"TEXTOPS_NLU_URL"`
	APIVersion       string        `envconfig:"TEXTOPS_API_VERSION"`
	Timeout          time.Duration `envconfig:"TEXTOPS_TIMEOUT"`
	LogLevel         string        `envconfig:"TEXTOPS_LOG_LEVEL"`
	LogFormat        string        `envconfig:"TEXTOPS_LOG_FORMAT"`
}

type fileWrapper struct {
	TextOps FileConfig `yaml:"textops" toml:"textops"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		TranslatorURL: DefaultTranslatorURL,
		NLUURL:        DefaultNLUURL,
		APIVersion:    nlapi.DefaultVersion,
		Timeout:       nlapi.DefaultTimeout,
	}
}

// LoadEnvFile loads variables from a .env file without overriding variables
// already set in the process. A missing file is only an error when explicit.
func LoadEnvFile(path string, explicit bool) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return false, nil
		}
		return false, WrapReadError(path, err)
	}
	return true, nil
}

// Load resolves the configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.applyFile(fc); err != nil {
			return nil, err
		}
	}

	var env envSettings
	if err := envconfig.Process("", &env); err != nil {
		return nil, &textops.Error{
			Type:    textops.ErrTypeConfiguration,
			Message: "invalid environment configuration",
			Cause:   err,
		}
	}
	cfg.applyEnv(env)

	return cfg, nil
}

// LoadFile reads the "textops" section of a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadFile(path string) (*FileConfig, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrConfigPathEmpty()
	}

	format := formatOf(trimmedPath)
	if format == "" {
		return nil, ErrConfigUnsupportedFormat(trimmedPath)
	}

	data, err := os.ReadFile(trimmedPath)
	if err != nil {
		return nil, WrapReadError(trimmedPath, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrConfigEmpty(trimmedPath)
	}

	var wrapper fileWrapper
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &wrapper); err != nil {
			return nil, ErrConfigInvalidSyntax(trimmedPath, format, err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &wrapper); err != nil {
			return nil, ErrConfigInvalidSyntax(trimmedPath, format, err)
		}
	}
	return &wrapper.TextOps, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

func (c *Config) applyFile(fc *FileConfig) error {
	c.TranslatorAPIKey = ResolveValue(fc.TranslatorAPIKey, c.TranslatorAPIKey)
	c.TranslatorURL = ResolveValue(fc.TranslatorURL, c.TranslatorURL)
	c.NLUAPIKey = ResolveValue(fc.NLUAPIKey, c.NLUAPIKey)
	c.NLUURL = ResolveValue(fc.NLUURL, c.NLUURL)
	c.APIVersion = ResolveValue(fc.APIVersion, c.APIVersion)
	c.LogLevel = ResolveValue(fc.LogLevel, c.LogLevel)
	c.LogFormat = ResolveValue(fc.LogFormat, c.LogFormat)

	if strings.TrimSpace(fc.Timeout) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(fc.Timeout))
		if err != nil || d <= 0 {
			return &textops.Error{
				Type:    textops.ErrTypeConfiguration,
				Message: fmt.Sprintf("invalid timeout %q in config file", fc.Timeout),
				Cause:   err,
				Hint:    "Use a positive Go duration such as 30s or 2m.",
			}
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv(env envSettings) {
	c.TranslatorAPIKey = ResolveValue(env.TranslatorAPIKey, c.TranslatorAPIKey)
	c.TranslatorURL = ResolveValue(env.TranslatorURL, c.TranslatorURL)
	c.NLUAPIKey = ResolveValue(env.NLUAPIKey, c.NLUAPIKey)
	c.NLUURL = ResolveValue(env.NLUURL, c.NLUURL)
	c.APIVersion = ResolveValue(env.APIVersion, c.APIVersion)
	c.LogLevel = ResolveValue(env.LogLevel, c.LogLevel)
	c.LogFormat = ResolveValue(env.LogFormat, c.LogFormat)
	if env.Timeout > 0 {
		c.Timeout = env.Timeout
	}
}

// Service returns the service configuration bound to kind. The binding is
// fixed: translation uses the translator credentials, the other kinds share
// the language-understanding credentials.
func (c *Config) Service(kind textops.Kind) (textops.ServiceConfig, error) {
	svc := textops.ServiceConfig{
		Version: c.APIVersion,
		Timeout: c.Timeout,
	}

	var envVar string
	switch kind {
	case textops.KindTranslate:
		svc.APIKey, svc.URL, envVar = c.TranslatorAPIKey, c.TranslatorURL, TranslatorAPIKeyEnv
	case textops.KindSentiment, textops.KindEntities:
		svc.APIKey, svc.URL, envVar = c.NLUAPIKey, c.NLUURL, NLUAPIKeyEnv
	default:
		return textops.ServiceConfig{}, textops.ErrUnsupportedKind(string(kind))
	}

	if strings.TrimSpace(svc.APIKey) == "" {
		return textops.ServiceConfig{}, textops.ErrMissingCredential(kind, envVar)
	}
	return svc, nil
}

// ResolveValue returns the explicit value if non-blank, otherwise the fallback.
func ResolveValue(explicit, fallback string) string {
	if strings.TrimSpace(explicit) != "" {
		return strings.TrimSpace(explicit)
	}
	return fallback
}
