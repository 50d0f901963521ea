package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/metrics"
)

type AdminHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewAdminHandler(repo db.Repository, log *slog.Logger) *AdminHandler {
	return &AdminHandler{repo: repo, log: log}
}

// PurgeLookups deletes history older than the older_than duration.
func (h *AdminHandler) PurgeLookups(w http.ResponseWriter, r *http.Request) {
	olderThan, err := time.ParseDuration(r.URL.Query().Get("older_than"))
	if err != nil || olderThan <= 0 {
		writeError(w, http.StatusBadRequest, "older_than must be a positive duration such as 720h")
		return
	}

	deleted, err := db.PurgeOlderThan(r.Context(), h.repo, olderThan)
	if err != nil {
		h.log.ErrorContext(r.Context(), "purging lookups", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.InfoContext(r.Context(), "purged lookups", "deleted", deleted, "older_than", olderThan)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
