// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Database defaults
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/data/copurchase.duckdb" {
		t.Errorf("Database.Path = %q, want /data/copurchase.duckdb", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("Database.MaxMemory = %q, want 1GB", cfg.Database.MaxMemory)
	}

	// Mining defaults
	if cfg.Mining.MinSupport != 0.04 {
		t.Errorf("Mining.MinSupport = %v, want 0.04", cfg.Mining.MinSupport)
	}
	if cfg.Mining.EventType != "buy" {
		t.Errorf("Mining.EventType = %q, want buy", cfg.Mining.EventType)
	}
	if cfg.Mining.Workers != 1 {
		t.Errorf("Mining.Workers = %d, want 1", cfg.Mining.Workers)
	}
	if cfg.Mining.Timeout != 10*time.Minute {
		t.Errorf("Mining.Timeout = %v, want 10m", cfg.Mining.Timeout)
	}
	if cfg.Mining.Schedule != "0 3 * * *" {
		t.Errorf("Mining.Schedule = %q, want '0 3 * * *'", cfg.Mining.Schedule)
	}
	if cfg.Mining.RunOnStartup {
		t.Error("Mining.RunOnStartup should be false by default")
	}

	// Server defaults
	if cfg.Server.Port != 8089 {
		t.Errorf("Server.Port = %d, want 8089", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.RateLimitRequests != 100 {
		t.Errorf("Server.RateLimitRequests = %d, want 100", cfg.Server.RateLimitRequests)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DB_DRIVER", "database.driver"},
		{"DB_PATH", "database.path"},
		{"DUCKDB_PATH", "database.path"},
		{"DB_THREADS", "database.threads"},
		{"MINING_MIN_SUPPORT", "mining.min_support"},
		{"MINING_EVENT_TYPE", "mining.event_type"},
		{"MINING_SCHEDULE", "mining.schedule"},
		{"MINING_RUN_ON_STARTUP", "mining.run_on_startup"},
		{"HTTP_PORT", "server.port"},
		{"RATE_LIMIT_WINDOW", "server.rate_limit_window"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("MINING_MIN_SUPPORT", "0.25")
	t.Setenv("MINING_WORKERS", "4")
	t.Setenv("MINING_TIMEOUT", "90s")
	t.Setenv("MINING_RUN_ON_STARTUP", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Database.Driver = %q, want sqlite3", cfg.Database.Driver)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Mining.MinSupport != 0.25 {
		t.Errorf("Mining.MinSupport = %v, want 0.25", cfg.Mining.MinSupport)
	}
	if cfg.Mining.Workers != 4 {
		t.Errorf("Mining.Workers = %d, want 4", cfg.Mining.Workers)
	}
	if cfg.Mining.Timeout != 90*time.Second {
		t.Errorf("Mining.Timeout = %v, want 90s", cfg.Mining.Timeout)
	}
	if !cfg.Mining.RunOnStartup {
		t.Error("Mining.RunOnStartup = false, want true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Untouched values keep their defaults
	if cfg.Mining.EventType != "buy" {
		t.Errorf("Mining.EventType = %q, want buy", cfg.Mining.EventType)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: sqlite3
  path: /var/lib/copurchase/events.db
mining:
  min_support: 0.1
  event_type: purchase
  schedule: "@hourly"
server:
  port: 7000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Environment wins over the file
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/var/lib/copurchase/events.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Mining.MinSupport != 0.1 {
		t.Errorf("Mining.MinSupport = %v, want 0.1", cfg.Mining.MinSupport)
	}
	if cfg.Mining.EventType != "purchase" {
		t.Errorf("Mining.EventType = %q, want purchase", cfg.Mining.EventType)
	}
	if cfg.Mining.Schedule != "@hourly" {
		t.Errorf("Mining.Schedule = %q, want @hourly", cfg.Mining.Schedule)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Mining.Workers != 1 {
		t.Errorf("Mining.Workers = %d, want default 1", cfg.Mining.Workers)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := loadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("loadFrom() error = nil, want error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to load config file") {
		t.Errorf("loadFrom() error = %v", err)
	}
}

func TestLoadWithKoanf_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"min support zero", map[string]string{"MINING_MIN_SUPPORT": "0"}},
		{"min support one", map[string]string{"MINING_MIN_SUPPORT": "1"}},
		{"min support negative", map[string]string{"MINING_MIN_SUPPORT": "-0.2"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "postgres"}},
		{"bad schedule", map[string]string{"MINING_SCHEDULE": "sometimes"}},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"too many workers", map[string]string{"MINING_WORKERS": "1000"}},
		{"path without extension", map[string]string{"DB_PATH": "/data/copurchase"}},
		{"rate limit without window", map[string]string{"RATE_LIMIT_WINDOW": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), "configuration validation failed") {
				t.Errorf("LoadWithKoanf() error = %v, want validation failure", err)
			}
		})
	}
}

func TestValidate_EmptySchedule(t *testing.T) {
	cfg := defaultConfig()
	cfg.Mining.Schedule = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with empty schedule = %v, want nil (scheduling disabled)", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8089, "0.0.0.0:8089"},
		{"", 80, ":80"},
		{"::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("DB_PATH", ":memory:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	path := filepath.Join(t.TempDir(), "copurchase.yaml")
	content := "database:\n  driver: sqlite3\n  path: " + filepath.Join(t.TempDir(), "rules.db") + "\nmining:\n  min_support: 0.25\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Database.Driver = %q, want sqlite3", cfg.Database.Driver)
	}
	if cfg.Mining.MinSupport != 0.25 {
		t.Errorf("Mining.MinSupport = %v, want 0.25", cfg.Mining.MinSupport)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() error = nil, want error for missing file")
	}
}
