package nlapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MissingFieldError reports a response without an expected field.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response missing field %q", e.Path)
}

// Field returns the value at a gjson path, or a MissingFieldError.
func Field(doc gjson.Result, path string) (gjson.Result, error) {
	value := doc.Get(path)
	if !value.Exists() || value.Type == gjson.Null {
		return gjson.Result{}, &MissingFieldError{Path: path}
	}
	return value, nil
}

// IndentJSON re-renders raw JSON with two-space indentation, keeping key order.
func IndentJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
