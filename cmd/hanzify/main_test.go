package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translate(t *testing.T, feminine bool, names ...string) []translation.Translation {
	t.Helper()
	tr := translation.NewTranslator(hanzify.New(nil), nil, nil)
	reqs := make([]translation.Request, len(names))
	for i, n := range names {
		reqs[i] = translation.Request{Name: n, Feminine: feminine}
	}
	out, err := tr.TranslateNames(context.Background(), reqs)
	require.NoError(t, err)
	return out
}

func TestReadNames(t *testing.T) {
	names, err := readNames(strings.NewReader("Иван\n\n  Лев Толстой  \n   \nАнна"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Иван", "Лев Толстой", "Анна"}, names)
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, translate(t, false, "Иван", "Лев Толстой"), options{}))
	assert.Equal(t, "伊万\n列夫·托尔斯托伊\n", buf.String())
}

func TestWritePinyinAndExplain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, translate(t, false, "Иван"), options{pinyin: true, explain: true}))
	assert.Equal(t, "伊万\tyi wan\n  иван: и=伊 ван=万 -> 伊万\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, write(&buf, translate(t, true, "Мария", "Ольга"), options{json: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var first translation.Translation
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "玛丽娅", first.Hanzi)
	assert.True(t, first.Feminine)
}

func TestRecordParams(t *testing.T) {
	p := recordParams(translate(t, false, "Иван")[0])
	assert.Equal(t, "Иван", p.Name)
	assert.Equal(t, "иван", p.Normalized)
	assert.Equal(t, "伊万", p.Hanzi)
	assert.Equal(t, "yi wan", p.Pinyin)
}
