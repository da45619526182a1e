// Package logging defines a small logging seam so the render pipeline
// never imports a concrete logging package directly, only this
// interface. The default implementation is backed by log/slog; tests
// can substitute a recording logger that satisfies the same interface.
package logging

import (
	"log/slog"
	"os"
)

// Logger is the narrow surface the render pipeline depends on. It
// mirrors three of slog's severities (Info, Warn, Error; not Debug)
// without requiring callers
// to hold a *slog.Logger directly.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewDefault builds a SlogLogger writing text-formatted records to
// stderr at the given minimum level.
func NewDefault(level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{logger: slog.New(handler)}
}

// Wrap adapts an already-constructed *slog.Logger.
func Wrap(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Discard is a Logger that drops every record, used as a safe default
// where no logger is supplied.
type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}

// Discard returns the no-op Logger.
func Discard() Logger { return discard{} }
