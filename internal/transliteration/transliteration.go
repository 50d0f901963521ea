package transliteration

import (
	"strings"
	"unicode"
)

// Pinyin returns the toneless pinyin reading of a transliterated name,
// one syllable per character, separated by spaces. Anything that is not a
// Chinese character, such as the · between words, is kept as its own token.
func Pinyin(hanzi string) string {
	return romanize(hanzi, plainArgs)
}

// PinyinTone is Pinyin with tone marks.
func PinyinTone(hanzi string) string {
	return romanize(hanzi, toneArgs)
}

// HasHan reports whether text contains any Chinese character.
func HasHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func romanize(text string, style syllableStyle) string {
	tokens := make([]string, 0, len(text)/3)
	var other strings.Builder
	flush := func() {
		if s := strings.TrimSpace(other.String()); s != "" {
			tokens = append(tokens, s)
		}
		other.Reset()
	}

	for _, r := range text {
		if syl, ok := style.syllable(r); ok {
			flush()
			tokens = append(tokens, syl)
			continue
		}
		other.WriteRune(r)
	}
	flush()
	return strings.Join(tokens, " ")
}
