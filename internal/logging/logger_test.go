package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv: %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
	// The no-op logger must absorb output without error.
	Info("should go nowhere")
	Sync()
}

func TestInitializeFromEnvVar(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv: %v", err)
	}
	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled when CLIFORM_LOG_LEVEL=debug")
	}
}

func TestInitializeExplicitLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if err := Initialize(level); err != nil {
			t.Errorf("Initialize(%q): %v", level, err)
		}
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	saved := logger
	logger = nil
	defer func() { logger = saved }()

	if GetLogger() == nil {
		t.Fatal("GetLogger must never return nil")
	}
}
