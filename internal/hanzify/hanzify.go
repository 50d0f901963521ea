// Package hanzify writes Russian personal names in Chinese characters
// following the standard transliteration tables for Russian names.
//
// A name is normalized, split into words on spaces, and each word is
// segmented by longest match against the phoneme table. The hanzi for a word
// then get the word-initial substitution and, for female names, the
// feminine substitutions. Words are joined with a middle dot:
//
//	hanzify.Transliterate("Лев Толстой", false) // "列夫·托尔斯托伊"
package hanzify

import (
	"strings"
	"sync"
)

// DefaultSeparator joins the transliterated words of a multi-word name.
const DefaultSeparator = "·"

// Engine transliterates names with a fixed Table. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	table     *Table
	separator string
	special   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeparator sets the string placed between transliterated words.
func WithSeparator(sep string) Option {
	return func(e *Engine) {
		e.separator = sep
	}
}

// WithSpecialPairs applies the table's rare-pair alternates after the
// feminine step. Off by default.
func WithSpecialPairs() Option {
	return func(e *Engine) {
		e.special = true
	}
}

// New returns an Engine over table. A nil table means Default().
func New(table *Table, opts ...Option) *Engine {
	if table == nil {
		table = Default()
	}
	e := &Engine{table: table, separator: DefaultSeparator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Word is the breakdown of one space-separated word of a name.
type Word struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Hanzi    string    `json:"hanzi"`
}

// Result is a transliteration with the steps that produced it.
type Result struct {
	Name       string `json:"name"`
	Normalized string `json:"normalized"`
	Feminine   bool   `json:"feminine"`
	Hanzi      string `json:"hanzi"`
	Words      []Word `json:"words"`
}

// Transliterate returns the hanzi form of name. It fails with an
// *UnsupportedInputError for characters outside the alphabet and with a
// *SegmentationError if the table cannot cover a word. An empty or
// all-space name yields "".
func (e *Engine) Transliterate(name string, feminine bool) (string, error) {
	res, err := e.Explain(name, feminine)
	if err != nil {
		return "", err
	}
	return res.Hanzi, nil
}

// Explain runs the same pipeline as Transliterate and also reports how
// each word was segmented.
func (e *Engine) Explain(name string, feminine bool) (Result, error) {
	normalized, err := Normalize(name)
	if err != nil {
		return Result{}, err
	}

	fields := strings.Fields(normalized)
	res := Result{
		Name:       name,
		Normalized: strings.Join(fields, " "),
		Feminine:   feminine,
		Words:      make([]Word, 0, len(fields)),
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		segs, err := segment(e.table.root, field)
		if err != nil {
			return Result{}, err
		}
		hanzi := e.postprocess(joinHanzi(segs), feminine)
		res.Words = append(res.Words, Word{Text: field, Segments: segs, Hanzi: hanzi})
		parts = append(parts, hanzi)
	}
	res.Hanzi = strings.Join(parts, e.separator)
	return res, nil
}

// postprocess applies the initial rule, then the feminine rule.
func (e *Engine) postprocess(raw string, feminine bool) string {
	out := applyInitial(raw, e.table.initial)
	if feminine {
		out = substitute(out, e.table.feminine)
	}
	if e.special {
		out = substitute(out, e.table.special)
	}
	return out
}

var defaultEngine = sync.OnceValue(func() *Engine { return New(Default()) })

// Transliterate is Engine.Transliterate on the built-in table.
func Transliterate(name string, feminine bool) (string, error) {
	return defaultEngine().Transliterate(name, feminine)
}
