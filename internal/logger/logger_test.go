package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "sysmon.log")

	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Console = false

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info().Str("component", "test").Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "nonsense"
	cfg.Console = false

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func TestWithComponent(t *testing.T) {
	if err := Init(Config{Level: "disabled"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	log := WithComponent("monitor")
	// Must not panic and must be usable at any level.
	log.Debug().Msg("noop")
}
