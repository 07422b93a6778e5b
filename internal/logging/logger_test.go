package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lootsweep/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.WarnLevel,
		"verbose": zapcore.WarnLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error", Format: "console"}, Options{Verbose: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should enable debug")
	}
}

func TestNew_LevelFromConfig(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error", Format: "json"}, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("error-level logger should not enable warn")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error-level logger should enable error")
	}
}

func TestGet(t *testing.T) {
	if l := Get(nil, CategoryLCU); l == nil {
		t.Fatal("Get(nil) must return a usable logger")
	}

	named := Get(zap.NewExample(), CategorySweep)
	if ce := named.Check(zapcore.InfoLevel, "x"); ce == nil || ce.LoggerName != "sweep" {
		t.Errorf("expected logger named sweep")
	}
}
