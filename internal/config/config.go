// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Mining   MiningConfig   `koanf:"mining"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds repository storage settings
type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"oneof=duckdb sqlite3"`
	Path   string `koanf:"path" validate:"required"`

	// DuckDB tuning, ignored by sqlite3. Threads 0 uses runtime.NumCPU().
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"`
}

// MiningConfig holds association rule mining settings
type MiningConfig struct {
	MinSupport   float64       `koanf:"min_support" validate:"gt=0,lt=1"`
	EventType    string        `koanf:"event_type" validate:"required"`
	Workers      int           `koanf:"workers" validate:"gte=0,lte=256"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	RunOnStartup bool          `koanf:"run_on_startup"`

	// Schedule is a cron expression. Empty disables scheduled runs.
	Schedule string `koanf:"schedule" validate:"omitempty,cronspec"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RateLimitRequests per RateLimitWindow per client IP. 0 disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address for the HTTP server.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, an optional YAML file, and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadFile is Load with an explicit config file. Unlike the search in Load,
// a missing file is an error. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	return loadFrom(path)
}
