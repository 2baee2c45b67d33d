// Package config loads runtime configuration for Wayfare from an
// optional YAML file with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration for the Wayfare server.
type Config struct {
	ServerName           string `yaml:"server_name"`
	DBPath               string `yaml:"db_path"`
	Seed                 bool   `yaml:"seed"`
	LogLevel             string `yaml:"log_level"`
	GeminiAPIKey         string `yaml:"gemini_api_key"`
	GeminiModel          string `yaml:"gemini_model"`
	EnrichTimeoutSeconds int    `yaml:"enrich_timeout_seconds"`
}

// Default returns a Config populated with safe defaults.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ServerName:           "wayfare",
		DBPath:               filepath.Join(home, ".wayfare", "wayfare.db"),
		Seed:                 true,
		LogLevel:             "info",
		GeminiModel:          "gemini-1.5-flash",
		EnrichTimeoutSeconds: 20,
	}
}

// Load reads config from disk, then applies environment overrides. A
// missing file is not an error — defaults plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config yaml: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the loaded config.
func (c *Config) applyEnv() {
	if v := os.Getenv("WAYFARE_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WAYFARE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WAYFARE_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Seed = b
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.GeminiModel = v
	}
	if v := os.Getenv("WAYFARE_ENRICH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EnrichTimeoutSeconds = n
		}
	}
}

// Validate checks configuration sanity.
func (c *Config) Validate() error {
	if c.ServerName == "" {
		return errors.New("server_name must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.EnrichTimeoutSeconds <= 0 {
		return errors.New("enrich_timeout_seconds must be > 0")
	}
	return nil
}
