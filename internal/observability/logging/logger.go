package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger builds the structured service logger writing to stdout.
func NewJSONLogger(service, level string) *slog.Logger {
	return newLogger(os.Stdout, service, level)
}

// NewStderrLogger writes logs to stderr, keeping stdout free for tools that
// print their payload there.
func NewStderrLogger(service, level string) *slog.Logger {
	return newLogger(os.Stderr, service, level)
}

func newLogger(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
