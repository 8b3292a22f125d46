// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
}

// New creates a Logger writing human-readable text to stderr at the given
// level.
func New(level domain.LogLevel) *Logger {
	return &Logger{logger: newSlog(os.Stderr, level)}
}

func newSlog(w io.Writer, level domain.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(level),
	}))
}

// SetOutput redirects the logger, used by tests to capture output.
func (l *Logger) SetOutput(w io.Writer, level domain.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = newSlog(w, level)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
