package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" || cfg.SendBuffer != 64 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.PongWait != 60*time.Second || cfg.WriteWait != 5*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	yaml := "mode: debug\nport: 9090\nping_period: 10s\npong_wait: 15s\nsend_buffer: 8\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RELAY_PORT", "9191")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Mode != "debug" || cfg.SendBuffer != 8 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Port != 9191 {
		t.Fatalf("Port = %d, want env override 9191", cfg.Port)
	}
	if cfg.PingPeriod != 10*time.Second || cfg.PongWait != 15*time.Second {
		t.Fatalf("durations not parsed: %+v", cfg)
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ping_period: 60s\npong_wait: 30s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected validation error when pong_wait <= ping_period")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if cfg.Port != 8080 || cfg.PongWait != 60*time.Second || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestDefaultIgnoresEnv(t *testing.T) {
	t.Setenv("RELAY_PORT", "9191")
	if got := Default().Port; got != 8080 {
		t.Fatalf("Default().Port = %d, want 8080", got)
	}
}
