package hanzify

import (
	"strings"
	"unicode/utf8"
)

// applyInitial swaps the first character of s for its word-initial form.
// Later occurrences of the same character are left alone.
func applyInitial(s string, initial map[rune]rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	if alt, ok := initial[r]; ok {
		return string(alt) + s[size:]
	}
	return s
}

// substitute replaces every character of s that has an entry in table.
func substitute(s string, table map[rune]rune) string {
	if len(table) == 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if alt, ok := table[r]; ok {
			return alt
		}
		return r
	}, s)
}
