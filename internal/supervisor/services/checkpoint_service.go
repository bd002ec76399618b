// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCheckpointInterval is used when NewCheckpointService gets a
// non-positive interval.
const DefaultCheckpointInterval = 15 * time.Minute

// Checkpointer flushes pending writes to durable storage.
// Satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically checkpoints the database so rule batches
// written by the mining layer do not pile up in the WAL.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCheckpointService creates a new checkpoint service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
		name:     "checkpoint-service",
	}
}

// Serve implements the suture.Service interface.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			cpCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := s.db.Checkpoint(cpCtx); err != nil {
				s.logger.Warn().Err(err).Msg("database checkpoint failed")
			} else {
				s.logger.Debug().Msg("database checkpoint complete")
			}
			cancel()
		}
	}
}

// String returns the service name for logging.
func (s *CheckpointService) String() string {
	return s.name
}
