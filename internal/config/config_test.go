package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ServerName != "wayfare" {
		t.Errorf("server name = %q", cfg.ServerName)
	}
	if !cfg.Seed {
		t.Error("seed should default to true")
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("model = %q", cfg.GeminiModel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerName != "wayfare" {
		t.Errorf("server name = %q", cfg.ServerName)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfare.yaml")
	data := []byte("db_path: /tmp/file.db\nlog_level: debug\nenrich_timeout_seconds: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	// Environment wins over the file.
	t.Setenv("WAYFARE_DB_PATH", "/tmp/env.db")
	t.Setenv("WAYFARE_SEED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("db path = %q, want env override", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want file value", cfg.LogLevel)
	}
	if cfg.EnrichTimeoutSeconds != 5 {
		t.Errorf("timeout = %d, want 5", cfg.EnrichTimeoutSeconds)
	}
	if cfg.Seed {
		t.Error("seed env override not applied")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty db_path accepted")
	}

	cfg = Default()
	cfg.EnrichTimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero timeout accepted")
	}
}
