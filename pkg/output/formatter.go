// Package output prints operation results and errors. It supports three modes:
//   - Default: the result's display text, as-is
//   - JSON: pretty-printed JSON
//   - Minimal+JSON: single-line JSON with abbreviated keys and no empty fields
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter handles output formatting with support for JSON and minimal modes.
type Formatter struct {
	JSON    bool // Output as JSON
	Minimal bool // Abbreviated single-line JSON; plain error text
	Writer  io.Writer
}

// New creates a new Formatter with the given options.
func New(jsonOutput, minimal bool, w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{
		JSON:    jsonOutput,
		Minimal: minimal,
		Writer:  w,
	}
}

// KeyAbbreviations maps JSON keys to their minimal-mode names.
var KeyAbbreviations = map[string]string{
	"operation":   "op",
	"translation": "tr",
	"model_id":    "m",
	"score":       "sc",
	"label":       "lb",
	"entities":    "ents",
	"message":     "msg",
	"error":       "err",
	"type":        "t",
	"text":        "txt",
	"relevance":   "rel",
	"count":       "n",
	"hint":        "h",
}

// Print outputs data according to the formatter's configuration. In text mode
// textFunc renders data; without one, JSON is used as fallback.
func (f *Formatter) Print(data interface{}, textFunc func(io.Writer, interface{})) error {
	if f.JSON || textFunc == nil {
		return f.printJSON(data)
	}
	textFunc(f.Writer, data)
	return nil
}

// PrintText writes one line of text.
func (f *Formatter) PrintText(text string) {
	fmt.Fprintln(f.Writer, text)
}

func (f *Formatter) printJSON(data interface{}) error {
	if !f.Minimal {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(f.Writer, string(out))
		return nil
	}

	// Round-trip through a generic value so json tags, RawMessage and maps
	// are all abbreviated the same way.
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	out, err := json.Marshal(minimize(generic))
	if err != nil {
		return err
	}
	fmt.Fprintln(f.Writer, string(out))
	return nil
}

// minimize abbreviates keys and drops empty strings, nulls and empty collections
// from objects. Zero numbers and false are kept.
func minimize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(val))
		for k, elem := range val {
			if isEmpty(elem) {
				continue
			}
			key := k
			if abbrev, ok := KeyAbbreviations[strings.ToLower(k)]; ok {
				key = abbrev
			}
			result[key] = minimize(elem)
		}
		return result
	case []interface{}:
		result := make([]interface{}, 0, len(val))
		for _, elem := range val {
			result = append(result, minimize(elem))
		}
		return result
	default:
		return v
	}
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// hinted is implemented by errors that carry a remediation hint.
type hinted interface {
	FormatWithHint() string
}

// PrintError outputs an error respecting JSON and Minimal modes.
// In JSON mode, outputs to the writer for parsing. In text mode, outputs to stderr.
// Returns the exit code (always 1 for errors).
func (f *Formatter) PrintError(err error) int {
	if f.JSON {
		result := ErrorResult{Error: true, Message: err.Error()}
		if f.Minimal {
			f.printJSON(result)
		} else {
			out, _ := json.MarshalIndent(result, "", "  ")
			fmt.Fprintln(f.Writer, string(out))
		}
		return 1
	}

	w := f.Writer
	if w == os.Stdout {
		w = os.Stderr
	}
	if f.Minimal {
		fmt.Fprintln(w, err.Error())
		return 1
	}
	msg := err.Error()
	var h hinted
	if errors.As(err, &h) {
		msg = h.FormatWithHint()
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
	return 1
}

// ErrorResult is the JSON shape of a reported error.
type ErrorResult struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
