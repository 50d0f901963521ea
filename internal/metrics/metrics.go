package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hanzify_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hanzify_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanzify_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Engine metrics.
var (
	Transliterations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hanzify_transliterations_total",
		Help: "Transliteration calls by outcome and gender",
	}, []string{"outcome", "gender"})

	TransliterationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hanzify_transliteration_duration_seconds",
		Help:    "Transliteration duration in seconds",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})

	LookupsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hanzify_lookups_recorded_total",
		Help: "Lookup history writes by result",
	}, []string{"result"})

	LookupsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hanzify_lookups_purged_total",
		Help: "Lookup history rows removed by retention",
	})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hanzify_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hanzify_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hanzify_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hanzify_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)

// Gender returns the label value used for the gender dimension.
func Gender(feminine bool) string {
	if feminine {
		return "feminine"
	}
	return "masculine"
}
