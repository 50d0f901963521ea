package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
)

type PrettyHandler struct {
	w     io.Writer
	level slog.Leveler
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

func NewPrettyHandler(w io.Writer, level slog.Level) *PrettyHandler {
	return &PrettyHandler{w: w, level: level, mu: &sync.Mutex{}}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timestamp := r.Time.Format("15:04:05")

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = red, "ERR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = yellow, "WRN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = green, "INF"
	default:
		levelColor, levelText = gray, "DBG"
	}

	fmt.Fprintf(h.w, "%s%s%s %s%-3s%s %s",
		gray, timestamp, reset,
		levelColor, levelText, reset,
		r.Message,
	)

	for _, a := range h.attrs {
		fmt.Fprintf(h.w, " %s%s%s=%v", cyan, a.Key, reset, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.qualify(a.Key)
		fmt.Fprintf(h.w, " %s%s%s=%v", cyan, a.Key, reset, a.Value)
		return true
	})

	fmt.Fprintln(h.w)
	return nil
}

func (h *PrettyHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name
	return &clone
}

// New builds a logger from LOG_FORMAT (json or pretty) and LOG_LEVEL
// (debug, info, warn, error) and installs it as the slog default.
func New() *slog.Logger {
	once.Do(func() {
		logger = build(os.Stdout, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
		slog.SetDefault(logger)
	})
	return logger
}

func build(w io.Writer, format, levelStr string) *slog.Logger {
	level := ParseLevel(levelStr)

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = NewPrettyHandler(w, level)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
