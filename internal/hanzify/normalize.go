package hanzify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases name letter by letter and checks that every
// character is a recognized Cyrillic letter or a plain space.
//
// The input is NFC-composed first so that a decomposed й or ё is accepted.
func Normalize(name string) (string, error) {
	composed := norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(composed))

	pos := 0
	for _, r := range composed {
		if lower, ok := foldTable[r]; ok {
			r = lower
		}
		if r != ' ' && !isLetter(r) {
			return "", &UnsupportedInputError{Input: name, Rune: r, Pos: pos}
		}
		b.WriteRune(r)
		pos++
	}
	return b.String(), nil
}
