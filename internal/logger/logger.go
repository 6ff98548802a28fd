// Package logger provides structured logging for the journal importer.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
}

// NewLogger creates a logger writing text records to stderr at the given level.
func NewLogger(level string) *Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing text records to w.
func NewLoggerWithWriter(level string, w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	return &Logger{
		internal: slog.New(handler),
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return NewLoggerWithWriter("error", io.Discard)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// WithRunID tags every record with a fresh run identifier.
func (l *Logger) WithRunID() *Logger {
	return l.With("run_id", uuid.NewString())
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		internal: l.internal.With(args...),
	}
}
