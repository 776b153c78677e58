package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/samestrin/text-ops/internal/textops"
)

// yamlPosition matches the "[line:column]" prefix of goccy/go-yaml errors.
var yamlPosition = regexp.MustCompile(`\[(\d+):(\d+)\]`)

// ErrConfigPathEmpty creates an error for when the config path is empty or whitespace
func ErrConfigPathEmpty() *textops.Error {
	return &textops.Error{
		Type:    textops.ErrTypeInvalidInput,
		Message: "config file path cannot be empty or whitespace",
		Hint:    "Provide a valid file path with --config or omit the flag to use the environment only.",
	}
}

// ErrConfigNotFound creates an error for when the config file doesn't exist
func ErrConfigNotFound(path string) *textops.Error {
	return &textops.Error{
		Type:    textops.ErrTypeConfiguration,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Create the file or point --config or --env-file at an existing one.",
	}
}

// ErrConfigPermissionDenied creates an error for when the config file cannot be read
func ErrConfigPermissionDenied(path string, cause error) *textops.Error {
	return &textops.Error{
		Type:    textops.ErrTypeConfiguration,
		Message: fmt.Sprintf("cannot read config file: %s", path),
		Cause:   cause,
		Hint:    "Check file permissions and ensure the file is readable.",
	}
}

// ErrConfigEmpty creates an error for when the config file is empty
func ErrConfigEmpty(path string) *textops.Error {
	return &textops.Error{
		Type:    textops.ErrTypeConfiguration,
		Message: fmt.Sprintf("config file is empty: %s", path),
		Hint:    "Add a textops section or remove the --config flag.",
	}
}

// ErrConfigUnsupportedFormat creates an error for an unknown file extension
func ErrConfigUnsupportedFormat(path string) *textops.Error {
	return &textops.Error{
		Type:    textops.ErrTypeInvalidInput,
		Message: fmt.Sprintf("unsupported config file format: %s", path),
		Hint:    "Use a .yaml, .yml or .toml file.",
	}
}

// ErrConfigInvalidSyntax creates an error for a file that does not parse.
func ErrConfigInvalidSyntax(path, format string, cause error) *textops.Error {
	message := fmt.Sprintf("invalid %s syntax in %s", format, path)
	if format == "yaml" {
		if m := yamlPosition.FindStringSubmatch(cause.Error()); len(m) == 3 {
			message = fmt.Sprintf("%s at line %s, column %s", message, m[1], m[2])
		}
	}
	return &textops.Error{
		Type:    textops.ErrTypeInvalidInput,
		Message: message,
		Cause:   cause,
		Hint:    "Check for missing colons, bad indentation, or unclosed quotes.",
	}
}

// WrapReadError maps an os error from reading a file to a configuration error
func WrapReadError(path string, err error) *textops.Error {
	if os.IsNotExist(err) {
		return ErrConfigNotFound(path)
	}
	if os.IsPermission(err) {
		return ErrConfigPermissionDenied(path, err)
	}
	return &textops.Error{
		Type:    textops.ErrTypeConfiguration,
		Message: fmt.Sprintf("failed to read config file: %s", path),
		Cause:   err,
	}
}
