// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package config provides layered configuration for copurchase.

# Configuration Sources

Configuration is loaded with koanf in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/copurchase/config.yaml
 3. Environment variables from an explicit allow-list (envTransformFunc)

# Configuration Structure

  - DatabaseConfig: driver (duckdb or sqlite3), path, DuckDB tuning
  - MiningConfig: min_support, event type, workers, timeout, cron schedule
  - ServerConfig: HTTP host, port, timeout, rate limiting
  - LoggingConfig: level, format, caller

# Example

	database:
	  driver: duckdb
	  path: /data/copurchase.duckdb
	mining:
	  min_support: 0.04
	  schedule: "0 3 * * *"

Equivalent environment:

	DB_DRIVER=duckdb DB_PATH=/data/copurchase.duckdb MINING_MIN_SUPPORT=0.04
*/
package config
