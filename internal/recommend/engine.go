// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/metrics"
)

// Engine drives mining runs: read events, mine rules, write the batch.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Collaborators
	repository Repository
	miner      RuleMiner
	depMu      sync.RWMutex

	// onRunCompleted is called after rules are written
	onRunCompleted func(*RunSummary)

	// runMu is held for the duration of a run
	runMu sync.Mutex

	// Run state
	statusMu sync.RWMutex
	status   RunStatus
}

// NewEngine creates a new mining engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetRepository sets the event source and rule sink.
func (e *Engine) SetRepository(repo Repository) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.repository = repo
}

// SetMiner sets the rule miner.
func (e *Engine) SetMiner(miner RuleMiner) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.miner = miner

	e.logger.Info().
		Str("miner", miner.Name()).
		Msg("registered rule miner")
}

// SetOnRunCompleted registers a callback invoked after every run that wrote
// rules. It runs on the mining goroutine, so it must not call Run.
func (e *Engine) SetOnRunCompleted(fn func(*RunSummary)) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.onRunCompleted = fn
}

// Run executes one mining run and writes the resulting rules.
func (e *Engine) Run(ctx context.Context) (*RunSummary, error) {
	_, summary, err := e.run(ctx, true)
	return summary, err
}

// Preview executes a mining run without writing rules.
func (e *Engine) Preview(ctx context.Context) (*MiningResult, *RunSummary, error) {
	return e.run(ctx, false)
}

func (e *Engine) run(ctx context.Context, persist bool) (*MiningResult, *RunSummary, error) {
	if !e.runMu.TryLock() {
		return nil, nil, ErrRunInProgress
	}
	defer e.runMu.Unlock()

	repo, miner := e.dependencies()
	if repo == nil {
		return nil, nil, ErrNoRepository
	}
	if miner == nil {
		return nil, nil, ErrNoMiner
	}

	summary := &RunSummary{
		RunID:     uuid.New().String()[:8],
		StartedAt: time.Now(),
	}
	// Repository and miner log through logging.Ctx and inherit the run fields.
	ctx = logging.ContextWithRunID(ctx, summary.RunID)
	ctx = logging.ContextWithLogger(ctx, e.logger)
	logger := logging.Ctx(ctx)

	e.markRunning()
	metrics.MiningRunInProgress.Set(1)
	defer metrics.MiningRunInProgress.Set(0)

	logger.Info().
		Float64("min_support", e.config.MinSupport).
		Str("miner", miner.Name()).
		Bool("persist", persist).
		Msg("starting mining run")

	runCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	result, err := e.execute(runCtx, repo, miner, summary, persist)

	elapsed := time.Since(summary.StartedAt)
	summary.DurationMS = elapsed.Milliseconds()
	e.finishRun(summary, err)
	metrics.RecordMiningRun(err == nil, elapsed)

	if err != nil {
		logger.Error().
			Err(err).
			Int64("duration_ms", summary.DurationMS).
			Msg("mining run failed")
		return nil, nil, err
	}

	metrics.RecordMiningResult(summary.Events, summary.Sessions, summary.FrequentItems, summary.FrequentPairs, summary.Rules)

	logger.Info().
		Int("events", summary.Events).
		Int("sessions", summary.Sessions).
		Int("frequent_items", summary.FrequentItems).
		Int("frequent_pairs", summary.FrequentPairs).
		Int("rules", summary.Rules).
		Int64("duration_ms", summary.DurationMS).
		Msg("mining run complete")

	if persist {
		e.notifyRunCompleted(summary)
	}

	return result, summary, nil
}

// execute performs the read, mine, write sequence and fills in the summary.
func (e *Engine) execute(ctx context.Context, repo Repository, miner RuleMiner, summary *RunSummary, persist bool) (*MiningResult, error) {
	events, err := repo.ReadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	summary.Events = len(events)

	result, err := miner.Mine(ctx, events, e.config.MinSupport)
	if err != nil {
		return nil, fmt.Errorf("mine rules: %w", err)
	}

	summary.Sessions = result.Sessions
	summary.FrequentItems = result.FrequentItems
	summary.FrequentPairs = result.FrequentPairs
	summary.Rules = len(result.Rules)

	if !persist {
		return result, nil
	}

	if err := repo.WriteRules(ctx, result.Rules); err != nil {
		return nil, fmt.Errorf("write rules: %w", err)
	}
	summary.Persisted = true

	return result, nil
}

func (e *Engine) dependencies() (Repository, RuleMiner) {
	e.depMu.RLock()
	defer e.depMu.RUnlock()
	return e.repository, e.miner
}

func (e *Engine) notifyRunCompleted(summary *RunSummary) {
	e.depMu.RLock()
	fn := e.onRunCompleted
	e.depMu.RUnlock()

	if fn != nil {
		done := *summary
		fn(&done)
	}
}

func (e *Engine) markRunning() {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.status.IsRunning = true
}

func (e *Engine) finishRun(summary *RunSummary, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.IsRunning = false
	e.status.RunCount++
	e.status.LastRunAt = time.Now()
	e.status.LastRunDurationMS = summary.DurationMS

	if err != nil {
		e.status.LastError = err.Error()
		return
	}

	e.status.LastError = ""
	done := *summary
	e.status.LastSummary = &done
}

// GetStatus returns the current run status.
func (e *Engine) GetStatus() RunStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()

	status := e.status
	if status.LastSummary != nil {
		summary := *status.LastSummary
		status.LastSummary = &summary
	}
	return status
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
