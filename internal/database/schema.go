// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"context"
	"fmt"
)

// The DDL below is accepted unchanged by both DuckDB and SQLite.
var tableStatements = []struct {
	name string
	ddl  string
}{
	{
		name: "collector_log",
		ddl: `CREATE TABLE IF NOT EXISTS collector_log (
			session_id VARCHAR,
			content_id VARCHAR,
			event VARCHAR,
			created TIMESTAMP
		)`,
	},
	{
		name: "seeded_recs",
		ddl: `CREATE TABLE IF NOT EXISTS seeded_recs (
			created TIMESTAMP,
			source VARCHAR,
			target VARCHAR,
			support DOUBLE,
			confidence DOUBLE,
			type VARCHAR
		)`,
	},
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_collector_log_event ON collector_log(event)`,
	`CREATE INDEX IF NOT EXISTS idx_seeded_recs_source ON seeded_recs(source)`,
	`CREATE INDEX IF NOT EXISTS idx_seeded_recs_created ON seeded_recs(created)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, t := range tableStatements {
		if _, err := db.conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
	}
	return nil
}

func (db *DB) createIndexes(ctx context.Context) error {
	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
