// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/copurchase/internal/recommend"
)

// MiningEngine runs one batch mining pass.
// Satisfied by *recommend.Engine.
type MiningEngine interface {
	Run(ctx context.Context) (*recommend.RunSummary, error)
}

// MiningServiceConfig holds configuration for the mining service.
type MiningServiceConfig struct {
	// Schedule decides when runs happen. Nil disables scheduled runs.
	Schedule cron.Schedule

	// RunOnStartup triggers a run as soon as the service starts.
	RunOnStartup bool
}

// ParseSchedule parses a standard five-field cron expression or a descriptor
// such as "@daily". An empty spec returns a nil schedule.
func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		return nil, nil
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse mining schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// MiningService wraps the mining engine for suture supervision.
type MiningService struct {
	engine MiningEngine
	config MiningServiceConfig
	logger zerolog.Logger
	now    func() time.Time
	name   string
}

// NewMiningService creates a new mining service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiningService(engine MiningEngine, cfg MiningServiceConfig, logger zerolog.Logger) *MiningService {
	return &MiningService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "mining").Logger(),
		now:    time.Now,
		name:   "mining-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MiningService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Bool("scheduled", s.config.Schedule != nil).
		Msg("mining service starting")

	if s.config.RunOnStartup {
		s.run(ctx, "startup")
	}

	if s.config.Schedule == nil {
		s.logger.Info().Msg("no mining schedule configured, runs are manual only")
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		next := s.config.Schedule.Next(s.now())
		if next.IsZero() {
			s.logger.Warn().Msg("mining schedule has no future activations")
			<-ctx.Done()
			return ctx.Err()
		}

		s.logger.Debug().Time("next_run", next).Msg("waiting for next scheduled run")
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("mining service shutting down")
			return ctx.Err()

		case <-timer.C:
			s.run(ctx, "schedule")
		}
	}
}

// run executes one mining pass. Failures are logged, never returned, so a
// bad run does not count against the supervisor's restart budget.
func (s *MiningService) run(ctx context.Context, trigger string) {
	start := time.Now()
	summary, err := s.engine.Run(ctx)

	switch {
	case errors.Is(err, recommend.ErrRunInProgress):
		s.logger.Info().Str("trigger", trigger).Msg("mining run skipped, another run is in progress")
	case err != nil:
		s.logger.Error().
			Err(err).
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("mining run failed")
	default:
		s.logger.Info().
			Str("trigger", trigger).
			Str("run_id", summary.RunID).
			Int("rules", summary.Rules).
			Dur("duration", time.Since(start)).
			Msg("mining run complete")
	}
}

// String returns the service name for logging.
func (s *MiningService) String() string {
	return s.name
}
