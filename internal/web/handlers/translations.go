package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/metrics"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/samber/lo"
)

const maxNameLength = 200

type TranslationHandler struct {
	repo       db.Repository
	log        *slog.Logger
	translator *translation.Translator
}

func NewTranslationHandler(repo db.Repository, log *slog.Logger, translator *translation.Translator) *TranslationHandler {
	return &TranslationHandler{repo: repo, log: log, translator: translator}
}

type translationResponse struct {
	ID          int64          `json:"id,omitempty"`
	Name        string         `json:"name"`
	Normalized  string         `json:"normalized"`
	Feminine    bool           `json:"feminine"`
	Hanzi       string         `json:"hanzi"`
	Pinyin      string         `json:"pinyin"`
	PinyinTone  string         `json:"pinyin_tone,omitempty"`
	Traditional string         `json:"traditional,omitempty"`
	Words       []hanzify.Word `json:"words,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse struct {
	Data       []translationResponse `json:"data"`
	Pagination paginationMeta        `json:"pagination"`
}

func fromTranslation(t translation.Translation) translationResponse {
	return translationResponse{
		Name:        t.Name,
		Normalized:  t.Normalized,
		Feminine:    t.Feminine,
		Hanzi:       t.Hanzi,
		Pinyin:      t.Pinyin,
		PinyinTone:  t.PinyinTone,
		Traditional: t.Traditional,
		Words:       t.Words,
	}
}

func fromLookup(l db.Lookup) translationResponse {
	return translationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Normalized:  l.Normalized,
		Feminine:    l.Feminine,
		Hanzi:       l.Hanzi,
		Pinyin:      l.Pinyin,
		Traditional: l.Traditional,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

// Transliterate renders a name without recording it.
func (h *TranslationHandler) Transliterate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req, err := parseRequest(q.Get("name"), q.Get("feminine"), q.Get("script"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.translator.Translate(r.Context(), req)
	if err != nil {
		h.writeTranslateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fromTranslation(t))
}

type createTranslationRequest struct {
	Name     string `json:"name"`
	Feminine bool   `json:"feminine"`
	Script   string `json:"script"`
}

// Create renders a name and records it in the lookup history.
func (h *TranslationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createTranslationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := parseRequest(body.Name, strconv.FormatBool(body.Feminine), body.Script)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.translator.Translate(r.Context(), req)
	if err != nil {
		h.writeTranslateError(w, r, err)
		return
	}

	l, err := h.repo.RecordLookup(r.Context(), db.RecordLookupParams{
		Name:        t.Name,
		Normalized:  t.Normalized,
		Feminine:    t.Feminine,
		Hanzi:       t.Hanzi,
		Pinyin:      t.Pinyin,
		Traditional: t.Traditional,
	})
	if err != nil {
		metrics.LookupsRecorded.WithLabelValues("error").Inc()
		h.log.ErrorContext(r.Context(), "recording lookup", "name", t.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.LookupsRecorded.WithLabelValues("ok").Inc()

	resp := fromTranslation(t)
	resp.ID = l.ID
	resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	writeJSON(w, http.StatusCreated, resp)
}

// List returns recorded lookups, newest first.
func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	total, err := h.repo.CountLookups(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting lookups", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	lookups, err := h.repo.ListRecentLookups(r.Context(), db.ListRecentLookupsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing lookups", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: lo.Map(lookups, func(l db.Lookup, _ int) translationResponse { return fromLookup(l) }),
		Pagination: paginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

func (h *TranslationHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	l, err := h.repo.GetLookup(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "translation not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, fromLookup(l))
}

func parseRequest(name, feminine, script string) (translation.Request, error) {
	if strings.TrimSpace(name) == "" {
		return translation.Request{}, errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return translation.Request{}, fmt.Errorf("name must be at most %d characters", maxNameLength)
	}

	req := translation.Request{Name: name}
	if feminine != "" {
		fem, err := strconv.ParseBool(feminine)
		if err != nil {
			return translation.Request{}, errors.New("feminine must be true or false")
		}
		req.Feminine = fem
	}

	switch script {
	case "", "simplified":
	case "traditional":
		req.Traditional = true
	default:
		return translation.Request{}, errors.New("script must be simplified or traditional")
	}
	return req, nil
}

type unsupportedResponse struct {
	Error     string `json:"error"`
	Character string `json:"character"`
	Position  int    `json:"position"`
}

func (h *TranslationHandler) writeTranslateError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupported *hanzify.UnsupportedInputError
	switch {
	case errors.As(err, &unsupported):
		writeJSON(w, http.StatusUnprocessableEntity, unsupportedResponse{
			Error:     fmt.Sprintf("unsupported character %q at position %d", unsupported.Rune, unsupported.Pos),
			Character: string(unsupported.Rune),
			Position:  unsupported.Pos,
		})
	case errors.Is(err, translation.ErrTraditionalUnavailable):
		writeError(w, http.StatusBadRequest, "traditional script is not enabled on this server")
	default:
		h.log.ErrorContext(r.Context(), "transliterating", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
