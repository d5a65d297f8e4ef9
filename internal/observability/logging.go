// Package observability builds the game's zap logger.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tatianab/steps-and-leaps/internal/config"
)

// NewLogger builds the logger shared by the engine, dice and TUI.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Precondition: when the TUI runs, cfg.Output must not include "stdout" or
// "stderr"; the alt screen owns the terminal, so the game logs to a file.
// cmd/simulate has no TUI and logs to "stderr".
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(cfg.Output) > 0 {
		zapCfg.OutputPaths = cfg.Output
		zapCfg.ErrorOutputPaths = cfg.Output
	}
	// Every roll and spin is logged; sampling would drop identical draws.
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build(zap.Fields(zap.String("app", "steps-and-leaps")))
	if err != nil {
		return nil, fmt.Errorf("building logger for %v: %w", zapCfg.OutputPaths, err)
	}
	return logger, nil
}
