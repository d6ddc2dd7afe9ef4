package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger with level from string.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level, false)
}

// NewText returns a human-readable logger for interactive use (the CLI).
func NewText(level string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, true)
}

// NewWithWriter builds a logger against an arbitrary writer.
func NewWithWriter(w io.Writer, level string, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
