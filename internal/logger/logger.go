// Package logger builds the process-wide zap logger from the Log config.
package logger

import (
	"fmt"

	"fix-manufacture-api/internal/config"

	"go.uber.org/zap"
)

// New returns a JSON production logger for format "json" and a console
// development logger for anything else, at the configured level.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zapConfig zap.Config
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = level
	zapConfig.OutputPaths = []string{"stdout"}

	return zapConfig.Build(zap.AddCaller())
}
