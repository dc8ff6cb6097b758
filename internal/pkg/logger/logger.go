// Package logger builds the process-wide zap logger and bridges it into
// log/slog so third-party code that logs through slog lands in the same
// stream.
package logger

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger at the given level. Unknown level
// strings fall back to info.
func New(levelStr string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// SetSlogDefault installs the zap core as the default slog handler.
func SetSlogDefault(l *zap.Logger) {
	handler := zapslog.NewHandler(l.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(handler))
}
