// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"fmt"
	"io"

	"github.com/tomtom215/copurchase/internal/config"
	"github.com/tomtom215/copurchase/internal/database"
	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/recommend"
	"github.com/tomtom215/copurchase/internal/recommend/algorithms"
)

// app holds the components shared by the subcommands.
type app struct {
	cfg    *config.Config
	db     *database.DB
	repo   *database.EventRepository
	engine *recommend.Engine
}

// openApp loads configuration, initializes logging to logOutput, opens the
// repository and assembles the mining engine. override, when non-nil, is
// applied to the loaded configuration before anything is built from it.
func openApp(opts *rootOptions, logOutput io.Writer, override func(*config.Config)) (*app, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if override != nil {
		override(cfg)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    logOutput,
	})

	// Engine first so a bad --min-support fails before the database is touched
	engine, err := recommend.NewEngine(&recommend.Config{
		MinSupport: cfg.Mining.MinSupport,
		EventType:  cfg.Mining.EventType,
		Workers:    cfg.Mining.Workers,
		Timeout:    cfg.Mining.Timeout,
	}, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create mining engine: %w", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := database.NewEventRepository(db, cfg.Mining.EventType)
	engine.SetRepository(repo)
	engine.SetMiner(algorithms.NewAssociationRules(algorithms.AssociationConfig{
		Workers: cfg.Mining.Workers,
	}))

	logging.Debug().
		Str("driver", db.Driver()).
		Str("db_path", cfg.Database.Path).
		Float64("min_support", cfg.Mining.MinSupport).
		Str("event_type", cfg.Mining.EventType).
		Msg("Configuration loaded")

	return &app{cfg: cfg, db: db, repo: repo, engine: engine}, nil
}

// Close checkpoints and closes the database.
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
