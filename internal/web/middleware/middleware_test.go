package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := range 3 {
		require.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request beyond limit should be denied")
	assert.True(t, rl.Allow("10.0.0.2"), "different IP should not be affected")
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	// Fill up the limit by backdating timestamps
	rl.mu.Lock()
	past := time.Now().Add(-rl.window - time.Second)
	for range 3 {
		rl.hits["10.0.0.1"] = append(rl.hits["10.0.0.1"], past)
	}
	rl.mu.Unlock()

	assert.True(t, rl.Allow("10.0.0.1"), "should allow after old entries expire")
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ip := fmt.Sprintf("10.0.0.%d", i)
			for range 7 {
				if rl.Allow(ip) {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, 5, count, "ip %d should have exactly 5 allowed requests", i)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(NewRateLimiter(1, time.Minute))(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiterPrune(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("10.0.0.1"))
	now = now.Add(30 * time.Second)
	require.True(t, rl.Allow("10.0.0.2"))

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, rl.Prune())
	assert.NotContains(t, rl.hits, "10.0.0.1")
	assert.Contains(t, rl.hits, "10.0.0.2")
	assert.Equal(t, 15*time.Second, rl.RetryAfter("10.0.0.2"))
	assert.Zero(t, rl.RetryAfter("10.0.0.1"))
}

func TestRateLimiterRunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)
	require.True(t, rl.Allow("10.0.0.1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.hits) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(ok, mark("first"), mark("second")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://names.example"})(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://names.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://names.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec = httptest.NewRecorder()
	CORS([]string{"*"})(ok).ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBasicAuth(t *testing.T) {
	h := BasicAuth("s3cret")(ok)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.SetBasicAuth("admin", "s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// An unset password locks the route.
	rec = httptest.NewRecorder()
	req.SetBasicAuth("admin", "")
	BasicAuth("")(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", " 198.51.100.7 ")
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "192.0.2.1", ClientIP(req))
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	status := func(code int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) })
	}

	for code, level := range map[int]string{200: "INFO", 404: "WARN", 500: "ERROR"} {
		buf.Reset()
		rec := httptest.NewRecorder()
		Chain(status(code), PrometheusMetrics(), RequestLogger(log)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, code, rec.Code)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, level, line["level"])
		assert.Equal(t, float64(code), line["status"])
		assert.Equal(t, "unmatched", line["route"])
	}
}

func TestCacheControl(t *testing.T) {
	rec := httptest.NewRecorder()
	CacheControl("no-store")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	CacheControl("no-store")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}
