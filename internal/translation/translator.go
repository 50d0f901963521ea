// Package translation turns Russian names into the rendering served by the
// API and CLI: hanzi, pinyin, an optional traditional-script form and the
// segment breakdown.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jusunglee/hanzify/internal/converter"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/metrics"
	"github.com/jusunglee/hanzify/internal/transliteration"
	"golang.org/x/sync/errgroup"
)

// ErrTraditionalUnavailable is returned when traditional output is requested
// but no converter is configured.
var ErrTraditionalUnavailable = errors.New("traditional script not configured")

const checkName = "Иван"

// Request is one name to render.
type Request struct {
	Name        string
	Feminine    bool
	Traditional bool
}

type Translation struct {
	Name        string         `json:"name"`
	Normalized  string         `json:"normalized"`
	Feminine    bool           `json:"feminine"`
	Hanzi       string         `json:"hanzi"`
	Pinyin      string         `json:"pinyin"`
	PinyinTone  string         `json:"pinyin_tone"`
	Traditional string         `json:"traditional,omitempty"`
	Words       []hanzify.Word `json:"words"`
}

type Translator struct {
	engine *hanzify.Engine
	conv   converter.TextConverter
	log    *slog.Logger
}

// NewTranslator wraps engine. conv may be nil, which disables traditional
// output.
func NewTranslator(engine *hanzify.Engine, conv converter.TextConverter, log *slog.Logger) *Translator {
	if log == nil {
		log = slog.Default()
	}
	return &Translator{engine: engine, conv: conv, log: log}
}

// CanConvert reports whether traditional output is available.
func (t *Translator) CanConvert() bool {
	return t.conv != nil
}

func (t *Translator) Translate(ctx context.Context, req Request) (Translation, error) {
	if req.Traditional && t.conv == nil {
		return Translation{}, ErrTraditionalUnavailable
	}

	start := time.Now()
	res, err := t.engine.Explain(req.Name, req.Feminine)
	metrics.TransliterationDuration.Observe(time.Since(start).Seconds())
	metrics.Transliterations.WithLabelValues(outcome(err), metrics.Gender(req.Feminine)).Inc()
	if err != nil {
		var segErr *hanzify.SegmentationError
		if errors.As(err, &segErr) {
			t.log.ErrorContext(ctx, "segmentation failed", "word", segErr.Word, "offset", segErr.Offset)
		}
		return Translation{}, err
	}

	tr := Translation{
		Name:       res.Name,
		Normalized: res.Normalized,
		Feminine:   res.Feminine,
		Hanzi:      res.Hanzi,
		Pinyin:     transliteration.Pinyin(res.Hanzi),
		PinyinTone: transliteration.PinyinTone(res.Hanzi),
		Words:      res.Words,
	}
	if req.Traditional {
		tr.Traditional = t.conv.SimToTrad(res.Hanzi)
	}

	t.log.DebugContext(ctx, "transliterated", "name", req.Name, "hanzi", tr.Hanzi, "feminine", req.Feminine)
	return tr, nil
}

// Check runs a known name through the engine without touching the traffic
// metrics. It backs the health endpoint.
func (t *Translator) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hanzi, err := t.engine.Transliterate(checkName, false)
	if err != nil {
		return fmt.Errorf("transliterating %q: %w", checkName, err)
	}
	if !transliteration.HasHan(hanzi) || transliteration.Pinyin(hanzi) == "" {
		return fmt.Errorf("transliterating %q: unexpected output %q", checkName, hanzi)
	}
	return nil
}

// TranslateNames renders reqs concurrently. Results keep the order of reqs;
// the first failure cancels the rest and is returned.
func (t *Translator) TranslateNames(ctx context.Context, reqs []Request) ([]Translation, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	out := make([]Translation, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tr, err := t.Translate(ctx, req)
			if err != nil {
				return err
			}
			out[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, hanzify.ErrUnsupportedInput):
		return "unsupported"
	case errors.Is(err, hanzify.ErrSegmentation):
		return "segmentation"
	default:
		return "error"
	}
}
