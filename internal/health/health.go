package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Checks maps a dependency name to a probe. A nil error means healthy.
type Checks map[string]func(ctx context.Context) error

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type response struct {
	Status string                 `json:"status"`
	Checks map[string]checkResult `json:"checks,omitempty"`
}

// Handler runs every check in parallel, each bounded by timeout, and answers
// 200 when all pass and 503 otherwise.
func Handler(checks Checks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var mu sync.Mutex
		results := make(map[string]checkResult, len(checks))
		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				res := checkResult{Status: "healthy"}
				if err := check(ctx); err != nil {
					res = checkResult{Status: "unhealthy", Error: err.Error()}
				}
				mu.Lock()
				results[name] = res
				mu.Unlock()
				return nil
			})
		}
		g.Wait()

		resp := response{Status: "ok", Checks: results}
		status := http.StatusOK
		for _, res := range results {
			if res.Status != "healthy" {
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}
}
