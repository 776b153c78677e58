package textops

import (
	"fmt"
	"strings"
)

// ErrorType classifies failures for reporting.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConfiguration
	ErrTypeInvalidInput
	ErrTypeRemote
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfiguration:
		return "configuration"
	case ErrTypeInvalidInput:
		return "invalid_input"
	case ErrTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error provides structured error information
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Hint    string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatWithHint returns the error message with hint if available
func (e *Error) FormatWithHint() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s\n  Hint: %s", e.Error(), e.Hint)
	}
	return e.Error()
}

// ErrUnsupportedKind is returned for an operation name outside the dispatch table.
func ErrUnsupportedKind(kind string) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("unsupported operation mode: %s", kind),
		Hint:    fmt.Sprintf("Use one of: %s.", strings.Join(KindNames(), ", ")),
	}
}

// ErrMissingOperation is returned when no operation name was given.
func ErrMissingOperation() *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: "operation mode is required",
		Hint:    fmt.Sprintf("Use one of: %s.", strings.Join(KindNames(), ", ")),
	}
}

// ErrMissingCredential is returned when the service bound to kind has no API key.
func ErrMissingCredential(kind Kind, envVar string) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("no API key configured for %s", kind),
		Hint:    fmt.Sprintf("Set %s in the environment, a .env file, or the --config file.", envVar),
	}
}

// ErrInputRead wraps a failure reading the input text.
func ErrInputRead(cause error) *Error {
	return &Error{
		Type:    ErrTypeInvalidInput,
		Message: "failed to read input",
		Cause:   cause,
	}
}

// ErrRemoteCall wraps any failure of the single outbound request.
func ErrRemoteCall(kind Kind, cause error) *Error {
	return &Error{
		Type:    ErrTypeRemote,
		Message: fmt.Sprintf("%s request failed", kind),
		Cause:   cause,
	}
}
