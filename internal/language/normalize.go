// Package language normalizes language tags supplied on the command line.
package language

import "strings"

// NormalizeTag lowercases the primary language subtag and uses "-" separators.
// Script and region subtags keep their case, so "zh_TW" becomes "zh-TW".
// Returns an empty string when the value is blank or contains non-letters.
func NormalizeTag(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(strings.ReplaceAll(trimmed, "_", "-"), "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if !isAlpha(part) {
			return ""
		}
		if len(normalized) == 0 {
			part = strings.ToLower(part)
		}
		normalized = append(normalized, part)
	}
	return strings.Join(normalized, "-")
}

// TargetCode returns the tag used as a translation target. Values that do not
// normalize are returned trimmed but otherwise untouched, so the remote
// service gets to reject them.
func TargetCode(raw string) string {
	if tag := NormalizeTag(raw); tag != "" {
		return tag
	}
	return strings.TrimSpace(raw)
}

func isAlpha(value string) bool {
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
