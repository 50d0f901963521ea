// e2e starts the full API stack on a temporary SQLite database and a real
// listener, then drives it over HTTP the way a client would. Exit status 1
// means a check failed.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hanzify/internal/db/sqlite"
	"github.com/jusunglee/hanzify/internal/hanzify"
	"github.com/jusunglee/hanzify/internal/logger"
	"github.com/jusunglee/hanzify/internal/translation"
	"github.com/jusunglee/hanzify/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

type check struct {
	name       string
	method     string
	path       string
	body       any
	wantStatus int
	wantField  string
	wantValue  any
}

var checks = []check{
	{"masculine", http.MethodGet, "/api/v1/transliterate?name=" + url.QueryEscape("Владимир"), nil, http.StatusOK, "hanzi", "弗拉季米尔"},
	{"feminine", http.MethodGet, "/api/v1/transliterate?feminine=true&name=" + url.QueryEscape("Наталья"), nil, http.StatusOK, "hanzi", "娜塔莉娅"},
	{"two words", http.MethodGet, "/api/v1/transliterate?name=" + url.QueryEscape("Лев Толстой"), nil, http.StatusOK, "hanzi", "列夫·托尔斯托伊"},
	{"latin rejected", http.MethodGet, "/api/v1/transliterate?name=Ivan", nil, http.StatusUnprocessableEntity, "position", float64(0)},
	{"record", http.MethodPost, "/api/v1/transliterations", map[string]any{"name": "Хрущёв"}, http.StatusCreated, "hanzi", "赫鲁希约夫"},
	{"fetch recorded", http.MethodGet, "/api/v1/transliterations/1", nil, http.StatusOK, "name", "Хрущёв"},
	{"missing", http.MethodGet, "/api/v1/transliterations/404", nil, http.StatusNotFound, "error", "translation not found"},
	{"health", http.MethodGet, "/health", nil, http.StatusOK, "status", "ok"},
}

func run() error {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	log.Info("Phase 1: Setting up DB and API...")
	dbPath := fmt.Sprintf("%s/hanzify-e2e-%d.db", os.TempDir(), time.Now().UnixNano())
	defer os.Remove(dbPath)

	repo, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("creating temp SQLite: %w", err)
	}
	defer repo.Close()

	translator := translation.NewTranslator(hanzify.New(nil), nil, log)
	router := web.NewRouter(repo, log, translator, web.Config{AllowedOrigins: []string{"*"}})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	server := &http.Server{Handler: router.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go server.Serve(ln)
	defer server.Shutdown(ctx)

	base := "http://" + ln.Addr().String()
	client := &http.Client{Timeout: 5 * time.Second}

	log.Info("Phase 2: Running checks...", "count", len(checks), "base", base)
	var failed []string
	for _, c := range checks {
		if err := runCheck(ctx, client, base, c); err != nil {
			log.Error("check failed", "check", c.name, "error", err)
			failed = append(failed, c.name)
			continue
		}
		log.Info("check passed", "check", c.name)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d checks failed: %v", len(failed), len(checks), failed)
	}
	return nil
}

func runCheck(ctx context.Context, client *http.Client, base string, c check) error {
	var body *bytes.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, base+c.path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != c.wantStatus {
		return fmt.Errorf("status %d, want %d", resp.StatusCode, c.wantStatus)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if got := out[c.wantField]; got != c.wantValue {
		return fmt.Errorf("%s = %v, want %v", c.wantField, got, c.wantValue)
	}
	return nil
}
