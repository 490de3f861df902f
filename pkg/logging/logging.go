// Package logging configures structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup("info", "text")  // colored output for terminals
//	logger := logging.Setup("debug", "json") // machine-readable output
//
// Setup also installs the logger as the slog default.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures logging at the given level and format and returns the
// logger. Unknown levels fall back to INFO; unknown formats to text.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. format is "text" (colored, via tint) or
// "json".
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
