package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/insight-backend/internal/config"
)

// NewLogger builds the process logger for the named command and installs it
// as the slog default. Output goes to stderr.
//
// Format "json" is meant for production, anything else selects the text
// handler with source locations. Unknown levels fall back to info.
func NewLogger(cfg config.LogConfig, command string) *slog.Logger {
	logger := newLogger(os.Stderr, cfg, command)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig, command string) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("cmd", command),
		slog.String("version", Version),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
