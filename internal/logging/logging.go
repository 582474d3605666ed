// Package logging provides slog logger construction for sparkmig.
// Human-format logs go to stderr so report output on stdout stays clean.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log output format.
type Format string

const (
	// FormatHuman renders TIMESTAMP [level] message | key=value lines.
	FormatHuman Format = "human"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// New creates a logger writing to w in the given format.
func New(w io.Writer, format Format, level slog.Level) *slog.Logger {
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(newHumanHandler(w, level))
}

// NewCLI creates the standard CLI logger on stderr.
func NewCLI(format Format, level slog.Level) *slog.Logger {
	return New(os.Stderr, format, level)
}

// NewDiscard creates a logger that drops everything. Useful in tests.
func NewDiscard() *slog.Logger {
	return New(io.Discard, FormatHuman, slog.Level(100))
}

// LevelFromString converts a string to a slog.Level.
// Supports debug, info, warn, error (case-insensitive); anything else is info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
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
