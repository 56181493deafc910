// Package logger provides structured logging using Zap.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment and level.
// "production" selects the JSON encoder, anything else the console encoder.
// An empty or unknown level keeps the encoder's default.
func Init(env, level string) {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if env == "production" {
			cfg = zap.NewProductionConfig()
		}
		if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development
// logger on first use.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", "")
	}
	return sugar
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
