// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package recommend

import (
	"math"
	"time"
)

// Config contains all configuration for a mining run.
type Config struct {
	// MinSupport is the singleton support threshold, strictly between 0 and 1.
	// An item is frequent when its occurrence count exceeds MinSupport * N.
	MinSupport float64 `json:"min_support"`

	// EventType is the event log value treated as a purchase.
	EventType string `json:"event_type"`

	// Workers is the number of counting shards. Values below 2 count sequentially.
	Workers int `json:"workers"`

	// Timeout bounds a whole run including repository I/O.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinSupport: 0.04,
		EventType:  "buy",
		Workers:    1,
		Timeout:    10 * time.Minute,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := ValidateMinSupport(c.MinSupport); err != nil {
		return err
	}
	if c.EventType == "" {
		return &ConfigError{Field: "event_type", Value: `""`, Reason: "must not be empty"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Value: c.Workers, Reason: "must not be negative"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Value: c.Timeout, Reason: "must be positive"}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ValidateMinSupport checks that minSupport lies in the open interval (0, 1).
func ValidateMinSupport(minSupport float64) error {
	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport >= 1 {
		return &ConfigError{Field: "min_support", Value: minSupport, Reason: "must be between 0 and 1 exclusive"}
	}
	return nil
}
