package ifempty

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IsBlank reports whether s contains nothing but whitespace and invisible
// formatting characters (zero width spaces, joiners, BOMs) once it has been
// NFKC normalized.
func IsBlank(s string) bool {
	if len(s) == 0 {
		return true
	}

	return len(strings.TrimFunc(norm.NFKC.String(s), invisible)) == 0
}

// Blank is like String, but a value made only of whitespace or invisible
// characters also counts as empty. Useful for user-entered text.
//
// Example:
//
//	ifempty.Blank(" \u200b\t", "untitled") // "untitled"
func Blank(value, fallback string) string {
	if IsBlank(value) {
		return fallback
	}

	return value
}

func invisible(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Cf, r)
}
