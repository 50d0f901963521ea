package translation

import (
	"context"
	"testing"

	"github.com/jusunglee/hanzify/internal/converter"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bracketConverter struct{}

// SimToTrad tags the text so tests can see the converter ran.
func (bracketConverter) SimToTrad(text string) string {
	return "[" + text + "]"
}

func newTestTranslator(conv converter.TextConverter) *Translator {
	return NewTranslator(hanzify.New(nil), conv, nil)
}

func TestTranslate(t *testing.T) {
	tr := newTestTranslator(nil)

	got, err := tr.Translate(context.Background(), Request{Name: "Лев Толстой"})
	require.NoError(t, err)
	assert.Equal(t, "列夫·托尔斯托伊", got.Hanzi)
	assert.Equal(t, "лев толстой", got.Normalized)
	assert.Equal(t, "lie fu · tuo er si tuo yi", got.Pinyin)
	assert.NotEmpty(t, got.PinyinTone)
	assert.Empty(t, got.Traditional)
	require.Len(t, got.Words, 2)
	assert.Equal(t, "лев", got.Words[0].Text)
}

func TestTranslateFeminine(t *testing.T) {
	tr := newTestTranslator(nil)

	got, err := tr.Translate(context.Background(), Request{Name: "Мария", Feminine: true})
	require.NoError(t, err)
	assert.Equal(t, "玛丽娅", got.Hanzi)
	assert.True(t, got.Feminine)
}

func TestTranslateTraditional(t *testing.T) {
	_, err := newTestTranslator(nil).Translate(context.Background(), Request{Name: "Иван", Traditional: true})
	assert.ErrorIs(t, err, ErrTraditionalUnavailable)

	tr := newTestTranslator(bracketConverter{})
	assert.True(t, tr.CanConvert())
	got, err := tr.Translate(context.Background(), Request{Name: "Иван", Traditional: true})
	require.NoError(t, err)
	assert.Equal(t, "[伊万]", got.Traditional)
}

func TestTranslateRejectsUnsupported(t *testing.T) {
	_, err := newTestTranslator(nil).Translate(context.Background(), Request{Name: "Ivan"})
	assert.ErrorIs(t, err, hanzify.ErrUnsupportedInput)
	assert.Equal(t, "unsupported", outcome(err))
}

func TestTranslateNamesKeepsOrder(t *testing.T) {
	tr := newTestTranslator(nil)
	names := []string{"Иван", "Анна", "Ольга", "Фёдор", "Владимир", "Хрущёв", "Наталья", "Мария", "Лев", "Бан"}

	reqs := make([]Request, len(names))
	for i, n := range names {
		reqs[i] = Request{Name: n}
	}
	got, err := tr.TranslateNames(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, got, len(names))
	for i, n := range names {
		assert.Equal(t, n, got[i].Name)
	}
	assert.Equal(t, "伊万", got[0].Hanzi)
	assert.Equal(t, "班", got[9].Hanzi)
}

func TestTranslateNamesFailsOnFirstError(t *testing.T) {
	tr := newTestTranslator(nil)
	_, err := tr.TranslateNames(context.Background(), []Request{{Name: "Иван"}, {Name: "John"}})
	assert.ErrorIs(t, err, hanzify.ErrUnsupportedInput)

	got, err := tr.TranslateNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckSkipsTrafficMetrics(t *testing.T) {
	tr := newTestTranslator(nil)
	ok := metrics.Transliterations.WithLabelValues("ok", metrics.Gender(false))
	before := testutil.ToFloat64(ok)

	require.NoError(t, tr.Check(context.Background()))
	assert.Equal(t, before, testutil.ToFloat64(ok))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tr.Check(ctx), context.Canceled)
}
