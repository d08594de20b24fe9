// Package logger builds the zap logger used across the application.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a zap logger. Release mode (GIN_MODE=release) produces JSON
// output; anything else gets the human-readable development encoder.
// LOG_LEVEL overrides the default level (info in release, debug otherwise).
func New() (*zap.Logger, error) {
	var cfg zap.Config
	if os.Getenv("GIN_MODE") == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	return cfg.Build()
}
