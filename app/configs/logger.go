package configs

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(env ENV) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(env.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", env.LogLevel, err)
	}

	cfg := zap.NewProductionConfig()
	if env.IsDevelopment() {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
