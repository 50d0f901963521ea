package transliteration

import (
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

type syllableStyle struct {
	args pinyin.Args
}

var (
	plainArgs = newStyle(pinyin.Normal)
	toneArgs  = newStyle(pinyin.Tone)
)

func newStyle(style int) syllableStyle {
	args := pinyin.NewArgs()
	args.Style = style
	return syllableStyle{args: args}
}

// syllable returns the first reading of a Chinese character.
func (s syllableStyle) syllable(r rune) (string, bool) {
	if !unicode.Is(unicode.Han, r) {
		return "", false
	}
	py := pinyin.SinglePinyin(r, s.args)
	if len(py) == 0 {
		return string(r), true
	}
	return py[0], true
}
