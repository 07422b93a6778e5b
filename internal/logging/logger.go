// Package logging builds the zap logger used across lootsweep.
// Each component logs through a named child logger for its category, and
// every line of a run carries the same run_id.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lootsweep/internal/config"
)

// Category names a component's child logger.
type Category string

const (
	CategoryBoot       Category = "boot"       // Config, startup
	CategoryLockfile   Category = "lockfile"   // Credential lookup
	CategoryLCU        Category = "lcu"        // Local client API calls
	CategoryDisenchant Category = "disenchant" // Craft loop
	CategorySweep      Category = "sweep"      // Run orchestration
)

// Options overrides config values from command-line flags.
type Options struct {
	Verbose bool
}

// ParseLevel maps a config level string to a zap level. Unknown values
// fall back to warn so a normal run stays quiet.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds the root logger for a run.
func New(cfg config.LoggingConfig, opts Options) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsJSON() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	level := ParseLevel(cfg.Level)
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("run_id", uuid.NewString())), nil
}

// Get returns the child logger for a category. A nil parent yields a no-op
// logger so components can be built without logging in tests.
func Get(parent *zap.Logger, cat Category) *zap.Logger {
	if parent == nil {
		return zap.NewNop()
	}
	return parent.Named(string(cat))
}
