// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomtom215/copurchase/internal/config"
	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/metrics"
)

// Supported database/sql driver names.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite3"
)

const memoryPath = ":memory:"

// DB wraps the event log and rule store connection
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	driver string

	closeOnce sync.Once
}

// New opens the configured database and initializes the schema
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverDuckDB
	}

	// Ensure parent directory exists for database file
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if cfg.Path != memoryPath {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr, err := connectionString(driver, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		driver: driver,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", driver).
		Str("path", cfg.Path).
		Msg("Database initialized")

	return db, nil
}

// connectionString builds the DSN for driver with tuning options
func connectionString(driver string, cfg *config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverDuckDB:
		numThreads := cfg.Threads
		if numThreads <= 0 {
			numThreads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "1GB"
		}
		// Disable auto-install/auto-load to prevent hangs in restricted network environments
		return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, numThreads, maxMemory), nil
	case DriverSQLite:
		return cfg.Path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	if db.driver == DriverSQLite {
		// Every sqlite3 connection to ":memory:" is a separate database, and
		// file databases allow a single writer anyway.
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		return
	}

	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and indexes
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.createTables(ctx); err != nil {
		return err
	}
	return db.createIndexes(ctx)
}

// Driver returns the database/sql driver name in use
func (db *DB) Driver() string {
	return db.driver
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return ErrClosed
	}
	return db.conn.PingContext(ctx)
}

// Checkpoint flushes the DuckDB WAL into the main database file.
// It is a no-op for sqlite3.
func (db *DB) Checkpoint(ctx context.Context) error {
	if db.driver != DriverDuckDB {
		return nil
	}
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Close checkpoints DuckDB and closes the connection. Calling Close more than
// once is safe.
func (db *DB) Close() error {
	var err error
	db.closeOnce.Do(func() {
		if db.conn == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if cpErr := db.Checkpoint(ctx); cpErr != nil {
			// Best effort, a missed checkpoint only lengthens the next WAL replay
			logging.Warn().Err(cpErr).Msg("Failed to checkpoint database before close")
		}
		cancel()

		err = db.conn.Close()
	})
	return err
}

// observe records the duration and outcome of a query
func (db *DB) observe(operation string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, db.driver, time.Since(start), err)
}
