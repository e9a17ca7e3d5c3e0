// Package textutils provides text canonicalization used to compare category
// labels and column headers.
package textutils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a label for fuzzy-equal comparison: it lowercases,
// strips diacritics through Unicode decomposition (NFD, drop Mn, NFC) and trims
// surrounding whitespace. It is pure and locale-independent, and
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := strings.ToLower(text)
	if isASCII(lowered) {
		return strings.TrimSpace(lowered)
	}

	// A transform.Chain keeps internal buffers, so it must not be shared
	// between goroutines; classification may run on a worker pool.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.TrimSpace(stripped)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
