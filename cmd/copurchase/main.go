// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

// Package main is the entry point for the copurchase command.
//
// copurchase mines "people who bought X also bought Y" association rules
// from a session-keyed purchase event log and serves them over HTTP.
//
// # Commands
//
//	copurchase serve               Run the supervisor tree (scheduler, HTTP API, checkpoints)
//	copurchase mine                Run one mining pass and persist the rules
//	copurchase mine --dry-run      Mine without writing and print the rules
//	copurchase rules --source SKU  List persisted rules
//	copurchase events import FILE  Load JSON-lines purchase events
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (MINING_MIN_SUPPORT, DB_PATH, HTTP_PORT, ...)
//   - Config file (--config, CONFIG_PATH, or config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM: the HTTP server drains
// in-flight requests, a running mining pass is cancelled, and the database
// is checkpointed and closed.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
