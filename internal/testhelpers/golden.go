// Package testhelpers provides golden-file and temp-file utilities for tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Update is true when UPDATE_GOLDEN=1; golden files are then rewritten.
var Update = os.Getenv("UPDATE_GOLDEN") == "1"

// GoldenFile returns the path of a golden file under the calling package's
// testdata/golden directory.
func GoldenFile(name string) string {
	return filepath.Join("testdata", "golden", name)
}

// AssertGolden compares actual output to a golden file.
func AssertGolden(t *testing.T, name string, actual string) {
	t.Helper()
	path := GoldenFile(name)

	if Update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", path, err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v (run with UPDATE_GOLDEN=1 to create it)", path, err)
	}
	want := strings.ReplaceAll(string(expected), "\r\n", "\n")
	if want != actual {
		t.Errorf("output mismatch for %s\n--- Diff ---\n%s", path, diff(want, actual))
	}
}

// diff lists differing lines as "- expected" / "+ actual" pairs.
func diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	n := len(expectedLines)
	if len(actualLines) > n {
		n = len(actualLines)
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		var exp, act string
		if i < len(expectedLines) {
			exp = expectedLines[i]
		}
		if i < len(actualLines) {
			act = actualLines[i]
		}
		if exp != act {
			b.WriteString("- " + exp + "\n+ " + act + "\n")
		}
	}
	return b.String()
}

// WriteTempFile writes content to name inside a fresh temp dir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
