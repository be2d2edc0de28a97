package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with application-specific functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger with the specified level. The handler emits JSON;
// use NewText for local development output.
func New(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, handlerOptions(level))
	return &Logger{Logger: slog.New(handler)}
}

// NewText creates a logger with a human-readable handler for development.
func NewText(level string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, handlerOptions(level))
	return &Logger{Logger: slog.New(handler)}
}

// Default returns a logger with default settings
func Default() *Logger {
	return New("info")
}

// With returns a child logger carrying the given attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func handlerOptions(level string) *slog.HandlerOptions {
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

	return &slog.HandlerOptions{Level: logLevel}
}
