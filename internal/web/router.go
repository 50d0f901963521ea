package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/health"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/jusunglee/hanzify/internal/web/handlers"
	"github.com/jusunglee/hanzify/internal/web/middleware"
)

// Config holds the router settings that come from flags.
type Config struct {
	AllowedOrigins []string
	AdminPassword  string
	// RateLimit is the number of requests per minute allowed per client IP.
	RateLimit int
}

type Router struct {
	repo       db.Repository
	log        *slog.Logger
	translator *translation.Translator
	cfg        Config
	limiter    *middleware.RateLimiter
}

func NewRouter(repo db.Repository, log *slog.Logger, translator *translation.Translator, cfg Config) *Router {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	return &Router{
		repo:       repo,
		log:        log,
		translator: translator,
		cfg:        cfg,
		limiter:    middleware.NewRateLimiter(cfg.RateLimit, time.Minute),
	}
}

// Run prunes idle clients from the rate limiter until ctx is done.
func (r *Router) Run(ctx context.Context) {
	r.limiter.Run(ctx, 5*time.Minute)
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	translationHandler := handlers.NewTranslationHandler(r.repo, r.log, r.translator)
	nameHandler := handlers.NewNameHandler(r.repo, r.log)
	adminHandler := handlers.NewAdminHandler(r.repo, r.log)

	mux.Handle("GET /api/v1/transliterate",
		middleware.Chain(
			http.HandlerFunc(translationHandler.Transliterate),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
			middleware.CacheControl("public, max-age=86400"),
		),
	)

	mux.Handle("POST /api/v1/transliterations",
		middleware.Chain(
			http.HandlerFunc(translationHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		),
	)

	mux.Handle("GET /api/v1/transliterations",
		middleware.Chain(
			http.HandlerFunc(translationHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("GET /api/v1/transliterations/{id}",
		middleware.Chain(
			http.HandlerFunc(translationHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("GET /api/v1/names/popular",
		middleware.Chain(
			http.HandlerFunc(nameHandler.Popular),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=30, max-age=0"),
		),
	)

	mux.Handle("DELETE /api/v1/admin/lookups",
		middleware.Chain(
			http.HandlerFunc(adminHandler.PurgeLookups),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.BasicAuth(r.cfg.AdminPassword),
		),
	)

	mux.Handle("GET /health",
		middleware.Chain(
			health.Handler(health.Checks{
				"database": r.repo.Ping,
				"engine":   r.translator.Check,
			}, 2*time.Second),
			middleware.PrometheusMetrics(),
		),
	)

	return middleware.CORS(r.cfg.AllowedOrigins)(mux)
}
