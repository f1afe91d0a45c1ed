package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with application-specific functionality
type Logger struct {
	*slog.Logger
}

// New creates a new JSON logger with the specified level
func New(level string) *Logger {
	return newWithHandler(level, false)
}

// NewText creates a logger with a human-readable text handler, used in development.
func NewText(level string) *Logger {
	return newWithHandler(level, true)
}

func newWithHandler(level string, text bool) *Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Default returns a logger with default settings
func Default() *Logger {
	return New("info")
}
