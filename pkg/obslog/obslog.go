// Package obslog wraps zap for the renderer's structured logging, mirroring
// nicolasmd87-gopher3D's internal/logger usage: a package-level Logger built
// once at startup, fields attached with zap.String/zap.Error/zap.Int rather
// than fmt-formatted messages.
package obslog

import (
	"go.uber.org/zap"
)

// Logger is the renderer's structured logger. Field is re-exported so
// callers never import zap directly.
type Logger struct {
	base *zap.Logger
}

// Field is a structured logging key/value pair.
type Field = zap.Field

// String, Int, Int64, Float64, Duration and Err build Fields the same way
// zap's package-level helpers do.
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Duration = zap.Duration
	Err      = zap.Error
)

// New builds a production logger: JSON output, info level and above.
func New() (*Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{base: base}, nil
}

// NewDevelopment builds a human-readable, debug-level logger for local runs.
func NewDevelopment() (*Logger, error) {
	base, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{base: base}, nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{base: zap.NewNop()}
}

func (l *Logger) Info(msg string, fields ...Field)  { l.base.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.base.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.base.Error(msg, fields...) }
func (l *Logger) Debug(msg string, fields ...Field) { l.base.Debug(msg, fields...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// With returns a child logger with fields attached to every subsequent
// entry, matching zap's own With semantics.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{base: l.base.With(fields...)}
}
