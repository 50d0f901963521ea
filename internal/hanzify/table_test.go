package hanzify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterTable returns a minimal dictionary with one entry per letter.
func letterTable() string {
	var b strings.Builder
	for _, r := range Alphabet() {
		b.WriteString(string(r))
		b.WriteString("\t阿\n")
	}
	return b.String()
}

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Same(t, table, Default())
	assert.Equal(t, 803, table.Len())
	assert.Equal(t, 5, table.MaxSegmentLen())

	for _, r := range Alphabet() {
		_, ok := table.Lookup(string(r))
		assert.True(t, ok, "letter %q", r)
	}
	_, ok := table.Lookup("ъ")
	assert.False(t, ok)
}

func TestSegmentsOrder(t *testing.T) {
	segs := Default().Segments()
	require.Len(t, segs, Default().Len())

	for i := 1; i < len(segs); i++ {
		prev, cur := utf8.RuneCountInString(segs[i-1]), utf8.RuneCountInString(segs[i])
		require.GreaterOrEqual(t, prev, cur, "%q before %q", segs[i-1], segs[i])
		if prev == cur {
			require.Greater(t, segs[i-1], segs[i])
		}
	}
	assert.Equal(t, 5, utf8.RuneCountInString(segs[0]))
	assert.Equal(t, 1, utf8.RuneCountInString(segs[len(segs)-1]))
}

func TestSpecialIsACopy(t *testing.T) {
	special := Default().Special()
	assert.Equal(t, '锡', special['西'])

	special['西'] = '东'
	assert.Equal(t, '锡', Default().Special()['西'])
}

func TestLoadTable(t *testing.T) {
	input := "# comment\n\n" + letterTable() + "ба\t巴\nбан\t班\n"
	table, err := LoadTable(strings.NewReader(input), Rules{})
	require.NoError(t, err)
	assert.Equal(t, len(Alphabet())+2, table.Len())
	assert.Equal(t, 3, table.MaxSegmentLen())

	got, err := New(table).Transliterate("бана", false)
	require.NoError(t, err)
	assert.Equal(t, "班阿", got)
}

func TestLoadTableRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules Rules
		want  string
	}{
		{"missing tab", letterTable() + "ба 巴\n", Rules{}, "expected segment<TAB>hanzi"},
		{"duplicate", letterTable() + "ба\t巴\nба\t班\n", Rules{}, "duplicate segment"},
		{"empty hanzi", letterTable() + "ба\t \n", Rules{}, "has no hanzi"},
		{"latin segment", letterTable() + "ba\t巴\n", Rules{}, "outside the alphabet"},
		{"hard sign", letterTable() + "ъ\t巴\n", Rules{}, "outside the alphabet"},
		{"latin hanzi", letterTable() + "ба\tba\n", Rules{}, "non-hanzi"},
		{"coverage", "а\t阿\n", Rules{}, "no single-letter entry"},
		{"bad rule", letterTable(), Rules{Feminine: map[rune]rune{'巴': 'b'}}, "feminine rule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tt.input), tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSegmentReportsUncoveredPosition(t *testing.T) {
	root := newTrieNode()
	root.insert("а", "阿")
	root.insert("ан", "安")

	segs, err := segment(root, "ана")
	require.NoError(t, err)
	assert.Equal(t, []Segment{{"ан", "安"}, {"а", "阿"}}, segs)

	_, err = segment(root, "анба")
	var segErr *SegmentationError
	require.ErrorAs(t, err, &segErr)
	assert.Equal(t, "анба", segErr.Word)
	assert.Equal(t, 2, segErr.Offset)
	assert.ErrorIs(t, err, ErrSegmentation)
	assert.NotErrorIs(t, err, ErrUnsupportedInput)
}

func TestLongestMatchBacktracksToLastTerminal(t *testing.T) {
	root := newTrieNode()
	root.insert("а", "阿")
	root.insert("абв", "巴")

	// "аб" is a path in the trie but not a key.
	n, hanzi := root.longestMatch([]rune("абг"))
	assert.Equal(t, 1, n)
	assert.Equal(t, "阿", hanzi)

	n, hanzi = root.longestMatch([]rune("абвг"))
	assert.Equal(t, 3, n)
	assert.Equal(t, "巴", hanzi)

	n, _ = root.longestMatch([]rune("б"))
	assert.Zero(t, n)
}

func TestPostprocessHelpers(t *testing.T) {
	assert.Equal(t, "", applyInitial("", initialForms))
	assert.Equal(t, "弗夫", applyInitial("夫夫", initialForms))
	assert.Equal(t, "伊夫", applyInitial("伊夫", initialForms))
	assert.Equal(t, "芭芭", substitute("巴巴", feminineForms))
	assert.Equal(t, "巴", substitute("巴", nil))
}
