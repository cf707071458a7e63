// Package logger wraps zap to provide a configurable structured logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger holds the underlying zap logger.
type Logger struct {
	// Log is the configured zap logger instance.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance; call Init to
// configure it.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug",
// "Info", "Warn", "Error") and replaces the no-op instance.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = log
	return nil
}
