package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"port": 9090, "log_level": "debug"},
		"log": {"file": "logs/app.log", "max_size_mb": 10},
		"session": {"ttl_minutes": 30, "sweep_minutes": 5}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.File != "logs/app.log" {
		t.Errorf("log file: got %q", cfg.Log.File)
	}
	if got := cfg.Session.TTL(); got != 30*time.Minute {
		t.Errorf("ttl: got %v, want 30m", got)
	}
	if got := cfg.Session.SweepInterval(); got != 5*time.Minute {
		t.Errorf("sweep: got %v, want 5m", got)
	}
}

func TestLoadEnvSubstitution(t *testing.T) {
	os.Setenv("METAMIND_TEST_PORT", "7070")
	defer os.Unsetenv("METAMIND_TEST_PORT")

	path := writeConfig(t, `{
		"server": {"port": ${METAMIND_TEST_PORT:8080}, "log_level": "${METAMIND_TEST_LEVEL:info}"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port from env: got %d, want 7070", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("log level default: got %q, want info", cfg.Server.LogLevel)
	}
}

func TestSessionDefaults(t *testing.T) {
	var s SessionConfig
	if got := s.TTL(); got != time.Hour {
		t.Errorf("default ttl: got %v", got)
	}
	if got := s.SweepInterval(); got != 10*time.Minute {
		t.Errorf("default sweep: got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
