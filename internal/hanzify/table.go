package hanzify

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

//go:embed data/phonemes.tsv
var phonemesTSV string

// Table is an immutable transliteration table: the phoneme dictionary and
// the substitution rules applied after segmentation. A Table is safe for
// concurrent use.
type Table struct {
	phonemes  map[string]string
	root      *trieNode
	maxKeyLen int

	feminine map[rune]rune
	initial  map[rune]rune
	special  map[rune]rune
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table. It is parsed and validated once; an
// invalid built-in table is a programming error and panics.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := LoadTable(strings.NewReader(phonemesTSV), DefaultRules())
		if err != nil {
			panic(fmt.Sprintf("hanzify: built-in table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadTable reads a phoneme dictionary and validates it together with rules.
//
// The dictionary format is one entry per line, segment<TAB>hanzi. Blank
// lines and lines starting with # are ignored.
func LoadTable(r io.Reader, rules Rules) (*Table, error) {
	phonemes := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, hanzi, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected segment<TAB>hanzi", lineNum)
		}
		key = strings.TrimSpace(key)
		hanzi = strings.TrimSpace(hanzi)

		if err := validateEntry(key, hanzi); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if _, dup := phonemes[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate segment %q", lineNum, key)
		}
		phonemes[key] = hanzi
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading phoneme table: %w", err)
	}

	return newTable(phonemes, rules)
}

func newTable(phonemes map[string]string, rules Rules) (*Table, error) {
	// Every letter needs a one-letter entry so that segmentation of a
	// normalized word always succeeds.
	missing := lo.Filter(Alphabet(), func(r rune, _ int) bool {
		_, ok := phonemes[string(r)]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("no single-letter entry for %q", string(missing))
	}

	for name, m := range map[string]map[rune]rune{
		"feminine": rules.Feminine,
		"initial":  rules.Initial,
		"special":  rules.Special,
	} {
		for from, to := range m {
			if !isHan(from) || !isHan(to) {
				return nil, fmt.Errorf("%s rule %q -> %q: both sides must be hanzi", name, from, to)
			}
		}
	}

	t := &Table{
		phonemes: phonemes,
		root:     newTrieNode(),
		feminine: maps.Clone(rules.Feminine),
		initial:  maps.Clone(rules.Initial),
		special:  maps.Clone(rules.Special),
	}
	for key, hanzi := range phonemes {
		t.root.insert(key, hanzi)
		t.maxKeyLen = max(t.maxKeyLen, utf8.RuneCountInString(key))
	}
	return t, nil
}

func validateEntry(key, hanzi string) error {
	if key == "" {
		return errors.New("empty segment")
	}
	if hanzi == "" {
		return fmt.Errorf("segment %q has no hanzi", key)
	}
	if !lo.EveryBy([]rune(key), isLetter) {
		return fmt.Errorf("segment %q has characters outside the alphabet", key)
	}
	if !lo.EveryBy([]rune(hanzi), isHan) {
		return fmt.Errorf("segment %q maps to non-hanzi %q", key, hanzi)
	}
	return nil
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// Len returns the number of phoneme entries.
func (t *Table) Len() int {
	return len(t.phonemes)
}

// MaxSegmentLen returns the length in letters of the longest segment.
func (t *Table) MaxSegmentLen() int {
	return t.maxKeyLen
}

// Lookup returns the hanzi for an exact segment.
func (t *Table) Lookup(segment string) (string, bool) {
	h, ok := t.phonemes[segment]
	return h, ok
}

// Segments returns all segments in scan priority order: longest first,
// equal lengths in reverse lexical order.
func (t *Table) Segments() []string {
	keys := lo.Keys(t.phonemes)
	slices.SortFunc(keys, func(a, b string) int {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return lb - la
		}
		return strings.Compare(b, a)
	})
	return keys
}

// Special returns a copy of the rare-pair alternates. They are only applied
// by engines built with WithSpecialPairs.
func (t *Table) Special() map[rune]rune {
	return maps.Clone(t.special)
}
