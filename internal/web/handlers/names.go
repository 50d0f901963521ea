package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/hanzify/internal/db"
	"github.com/samber/lo"
)

type NameHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewNameHandler(repo db.Repository, log *slog.Logger) *NameHandler {
	return &NameHandler{repo: repo, log: log}
}

type popularNameResponse struct {
	Normalized string `json:"normalized"`
	Hanzi      string `json:"hanzi"`
	Count      int64  `json:"count"`
	LastSeen   string `json:"last_seen"`
}

// Popular lists the most looked-up names within a period.
func (h *NameHandler) Popular(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	period := q.Get("period")
	if period == "" {
		period = "all"
	}
	since, ok := periodCutoff(period, time.Now())
	if !ok {
		writeError(w, http.StatusBadRequest, "period must be one of hour, day, week, month, year, all")
		return
	}

	names, err := h.repo.ListPopularNames(r.Context(), db.ListPopularNamesParams{
		Limit: int32(limit),
		Since: since,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing popular names", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period": period,
		"data": lo.Map(names, func(n db.PopularName, _ int) popularNameResponse {
			return popularNameResponse{
				Normalized: n.Normalized,
				Hanzi:      n.Hanzi,
				Count:      n.Count,
				LastSeen:   n.LastSeen.Format(time.RFC3339),
			}
		}),
	})
}

// periodCutoff returns the start of period counting back from now. "all" has
// no cutoff. ok is false for an unknown period.
func periodCutoff(period string, now time.Time) (since time.Time, ok bool) {
	switch period {
	case "hour":
		return now.Add(-time.Hour), true
	case "day":
		return now.AddDate(0, 0, -1), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	case "all":
		return time.Time{}, true
	default:
		return time.Time{}, false
	}
}
