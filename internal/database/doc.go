// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

// Package database provides the event log and rule storage for copurchase.
//
// # Overview
//
// The package owns two tables:
//
//   - collector_log: raw collector events (session_id, content_id, event, created)
//   - seeded_recs: mined association rules (created, source, target, support, confidence, type)
//
// EventRepository adapts a DB to recommend.Repository: it reads the events of a
// single event type and appends rule batches.
//
// # Drivers
//
// Two database/sql drivers are supported, selected by DatabaseConfig.Driver:
//
//   - duckdb (github.com/duckdb/duckdb-go/v2), the default
//   - sqlite3 (github.com/mattn/go-sqlite3)
//
// Both accept ":memory:" as a path, which is what the tests use.
//
// # Observability
//
// Every query is timed and recorded through metrics.RecordDBQuery under an
// operation label (read_events, write_rules, list_rules, insert_events).
package database
