// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomtom215/copurchase/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	return c.validateServer()
}

// validateDatabase checks driver-specific settings
func (c *Config) validateDatabase() error {
	path := strings.TrimSpace(c.Database.Path)
	if path != c.Database.Path {
		return fmt.Errorf("DB_PATH must not have surrounding whitespace")
	}
	if path == ":memory:" {
		return nil
	}
	if filepath.Ext(path) == "" {
		return fmt.Errorf("DB_PATH %q must include a file extension (e.g. .duckdb or .db)", path)
	}
	return nil
}

// validateServer checks rate limit settings
func (c *Config) validateServer() error {
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when RATE_LIMIT_REQUESTS is set")
	}
	return nil
}
