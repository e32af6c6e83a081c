package validation

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxQueryLength bounds directory search input.
const MaxQueryLength = 100

// ParseID parses a positive int64 identifier from a path or query value.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// TruncateString truncates s to at most maxLen runes
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// SearchQuery cleans a directory search term.
func SearchQuery(s string) string {
	return TruncateString(strings.TrimSpace(SanitizeString(s)), MaxQueryLength)
}
