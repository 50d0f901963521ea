package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerHealthy(t *testing.T) {
	h := Handler(Checks{
		"database": func(ctx context.Context) error { return nil },
		"table":    func(ctx context.Context) error { return nil },
	}, time.Second)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Len(t, body.Checks, 2)
}

func TestHandlerUnhealthy(t *testing.T) {
	h := Handler(Checks{
		"database": func(ctx context.Context) error { return errors.New("connection refused") },
		"table":    func(ctx context.Context) error { return nil },
	}, time.Second)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, "connection refused", body.Checks["database"].Error)
	assert.Equal(t, "healthy", body.Checks["table"].Status)
}

func TestHandlerTimeout(t *testing.T) {
	h := Handler(Checks{
		"slow": func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlerNoChecks(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(nil, time.Second)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
