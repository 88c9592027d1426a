// Package textx provides small text utilities used across the project.
package textx

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// StripMarkup removes tag-like substrings so that word counts reflect prose
// rather than markup pasted from rich-text editors.
func StripMarkup(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, " "))
}

// Words splits s on runs of whitespace after stripping markup.
func Words(s string) []string {
	return strings.Fields(StripMarkup(s))
}

// CountWords returns the number of whitespace-delimited words in s,
// markup excluded.
func CountWords(s string) int {
	return len(Words(s))
}

// TokenSet returns the lowercased set of whitespace-delimited tokens of s.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
