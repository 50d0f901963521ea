// hanzify writes Russian names in Chinese characters.
//
//	hanzify Иван "Лев Толстой"
//	hanzify --feminine --pinyin Мария
//	cat names.txt | hanzify --explain
//	hanzify --interactive --history names.db
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hanzify/internal/converter"
	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/db/sqlite"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/logger"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/jusunglee/hanzify/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	feminine    bool
	pinyin      bool
	traditional bool
	explain     bool
	json        bool
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("hanzify")

	var (
		feminine    = fs.BoolLong("feminine", "use the feminine character set")
		pinyin      = fs.BoolLong("pinyin", "print the pinyin reading after the hanzi")
		traditional = fs.BoolLong("traditional", "also print traditional characters (needs --converter)")
		explain     = fs.BoolLong("explain", "print how each word was segmented")
		jsonOut     = fs.BoolLong("json", "print one JSON object per name")
		interactive = fs.BoolLong("interactive", "start the interactive terminal UI")
		special     = fs.BoolLong("special", "apply the rare-pair alternates")
		separator   = fs.StringLong("separator", hanzify.DefaultSeparator, "string placed between words")
		convKind    = fs.StringEnumLong("converter", "traditional-script converter", "none", "opencc")
		history     = fs.StringLong("history", "", "SQLite file to record lookups in")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("HANZIFY")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv, err := converter.New(*convKind)
	if err != nil {
		return fmt.Errorf("creating converter: %w", err)
	}
	if *traditional && conv == nil {
		return errors.New("--traditional needs --converter opencc")
	}

	engineOpts := []hanzify.Option{hanzify.WithSeparator(*separator)}
	if *special {
		engineOpts = append(engineOpts, hanzify.WithSpecialPairs())
	}
	translator := translation.NewTranslator(hanzify.New(hanzify.Default(), engineOpts...), conv, log)

	var repo db.Repository
	if *history != "" {
		r, err := sqlite.New(ctx, *history)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer r.Close()
		repo = r
	}

	if *interactive {
		var save tui.SaveFunc
		if repo != nil {
			save = func(t translation.Translation) error {
				_, err := repo.RecordLookup(ctx, recordParams(t))
				return err
			}
		}
		return tui.Run(translator, save)
	}

	names := fs.GetArgs()
	if len(names) == 0 {
		names, err = readNames(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading names: %w", err)
		}
	}
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return errors.New("no names given")
	}

	reqs := make([]translation.Request, len(names))
	for i, name := range names {
		reqs[i] = translation.Request{Name: name, Feminine: *feminine, Traditional: *traditional}
	}
	results, err := translator.TranslateNames(ctx, reqs)
	if err != nil {
		return err
	}

	if repo != nil {
		err := repo.WithTx(ctx, func(tx db.Repository) error {
			for _, t := range results {
				if _, err := tx.RecordLookup(ctx, recordParams(t)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
		log.DebugContext(ctx, "recorded lookups", "count", len(results), "path", *history)
	}

	return write(os.Stdout, results, options{
		feminine:    *feminine,
		pinyin:      *pinyin,
		traditional: *traditional,
		explain:     *explain,
		json:        *jsonOut,
	})
}

// readNames returns the non-blank lines of r.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}

func write(w io.Writer, results []translation.Translation, opts options) error {
	if opts.json {
		enc := json.NewEncoder(w)
		for _, t := range results {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range results {
		line := t.Hanzi
		if opts.traditional {
			line += "\t" + t.Traditional
		}
		if opts.pinyin {
			line += "\t" + t.Pinyin
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if opts.explain {
			for _, word := range t.Words {
				parts := make([]string, len(word.Segments))
				for i, s := range word.Segments {
					parts[i] = s.Text + "=" + s.Hanzi
				}
				fmt.Fprintf(w, "  %s: %s -> %s\n", word.Text, strings.Join(parts, " "), word.Hanzi)
			}
		}
	}
	return nil
}

func recordParams(t translation.Translation) db.RecordLookupParams {
	return db.RecordLookupParams{
		Name:        t.Name,
		Normalized:  t.Normalized,
		Feminine:    t.Feminine,
		Hanzi:       t.Hanzi,
		Pinyin:      t.Pinyin,
		Traditional: t.Traditional,
	}
}
