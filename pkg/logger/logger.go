// Package logger builds the *zap.SugaredLogger instances handed to every
// subsystem (engine, storage, pool, server), through engine.Config or as a
// constructor argument.
// Production builds get a JSON encoder suited to log aggregation; setting
// KVSD_ENV=dev switches to zap's human-readable console encoder, which is
// what you want watching a single kvsd-server on a terminal.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger scoped to service, e.g. "kvsd-server" or
// "kvsd-client". The service name is attached to every log line so that logs
// from the server and a client talking to it can be told apart when
// aggregated.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("KVSD_ENV") == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		// Logging can't initialize; fall back to a no-op logger rather than
		// taking down the process over an observability failure.
		logger = zap.NewNop()
	}

	return logger.Sugar().With("service", service)
}
