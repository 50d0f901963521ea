package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hanzify/internal/converter"
	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/db/postgres"
	"github.com/jusunglee/hanzify/internal/db/sqlite"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/logger"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/jusunglee/hanzify/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE(args []string) error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("hanzify-web")

	var (
		port           = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL    = fs_.StringLong("database-url", "hanzify.db", "PostgreSQL connection URL or SQLite file path")
		convKind       = fs_.StringEnumLong("converter", "traditional-script converter", "none", "opencc")
		separator      = fs_.StringLong("separator", hanzify.DefaultSeparator, "string placed between transliterated words")
		specialPairs   = fs_.BoolLong("special-pairs", "apply the rare-pair alternates")
		allowedOrigins = fs_.StringLong("allowed-origins", "*", "Comma-separated list of allowed CORS origins")
		adminPassword  = fs_.StringLong("admin-password", "", "Basic auth password for admin routes (empty disables them)")
		rateLimit      = fs_.IntLong("rate-limit", 60, "Requests per minute per client IP on transliteration routes")
		retention      = fs_.DurationLong("retention", 90*24*time.Hour, "Delete lookups older than this (0 keeps them forever)")
	)

	if err := ff.Parse(fs_, args, ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	repo, err := openRepository(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	conv, err := converter.New(*convKind)
	if err != nil {
		return fmt.Errorf("creating converter: %w", err)
	}

	engineOpts := []hanzify.Option{hanzify.WithSeparator(*separator)}
	if *specialPairs {
		engineOpts = append(engineOpts, hanzify.WithSpecialPairs())
	}
	engine := hanzify.New(hanzify.Default(), engineOpts...)
	log.InfoContext(ctx, "loaded phoneme table", "entries", hanzify.Default().Len(), "converter", *convKind)

	translator := translation.NewTranslator(engine, conv, log)

	var origins []string
	for _, o := range strings.Split(*allowedOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	router := web.NewRouter(repo, log, translator, web.Config{
		AllowedOrigins: origins,
		AdminPassword:  *adminPassword,
		RateLimit:      *rateLimit,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case sig := <-sigChan:
			log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
			cancel(errors.New("signal received"))
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		log.InfoContext(ctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		router.Run(gctx)
		return nil
	})

	if *retention > 0 {
		g.Go(func() error {
			runRetention(gctx, repo, *retention, log)
			return nil
		})
	}

	// Periodically export pgxpool stats as Prometheus gauges
	if pg, ok := repo.(*postgres.Repository); ok {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					pg.RecordPoolStats()
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	return g.Wait()
}

func openRepository(ctx context.Context, url string) (db.Repository, error) {
	if db.IsPostgresURL(url) {
		repo, err := postgres.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		slog.InfoContext(ctx, "connected to PostgreSQL database")
		return repo, nil
	}

	repo, err := sqlite.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	slog.InfoContext(ctx, "opened SQLite database", "path", url)
	return repo, nil
}

// runRetention purges old lookups once at startup and then hourly.
func runRetention(ctx context.Context, repo db.Repository, age time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		deleted, err := db.PurgeOlderThan(ctx, repo, age)
		if err != nil && ctx.Err() == nil {
			log.ErrorContext(ctx, "retention purge failed", "error", err)
		} else if deleted > 0 {
			log.InfoContext(ctx, "retention purge", "deleted", deleted, "older_than", age)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
