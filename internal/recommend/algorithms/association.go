// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"context"
	"time"

	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/recommend"
)

// AssociationRules mines pairwise association rules from purchase sessions.
//
// A Mine call runs the full pipeline:
//
//	events -> transactions -> frequent singletons -> frequent pairs -> rules
//
// All rules of one call share a single creation timestamp, taken after
// counting and before the rules are derived.
type AssociationRules struct {
	BaseAlgorithm

	// Configuration
	workers int
	clock   func() time.Time
}

// AssociationConfig contains configuration for the association rule miner.
type AssociationConfig struct {
	// Workers is the number of counting shards. Values below 2 count sequentially.
	Workers int

	// Clock supplies the rule timestamp. Defaults to the current UTC time
	// truncated to microseconds.
	Clock func() time.Time
}

// NewAssociationRules creates a new association rule miner.
func NewAssociationRules(cfg AssociationConfig) *AssociationRules {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		}
	}

	return &AssociationRules{
		BaseAlgorithm: NewBaseAlgorithm("association"),
		workers:       cfg.Workers,
		clock:         cfg.Clock,
	}
}

// Mine builds rules for the given events.
//
// An invalid minSupport returns a *recommend.ConfigError and a malformed
// event returns a *recommend.ValidationError, both before any counting.
// Empty input yields an empty result.
func (a *AssociationRules) Mine(ctx context.Context, events []recommend.Event, minSupport float64) (*recommend.MiningResult, error) {
	if err := recommend.ValidateMinSupport(minSupport); err != nil {
		return nil, err
	}

	tx, err := GroupTransactions(events)
	if err != nil {
		return nil, err
	}

	singletons, err := countSingletons(ctx, tx, minSupport, a.workers)
	if err != nil {
		return nil, err
	}

	pairs, err := countPairs(ctx, tx, singletons, a.workers)
	if err != nil {
		return nil, err
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	logging.Ctx(ctx).Debug().
		Int("sessions", len(tx)).
		Int("frequent_items", len(singletons)).
		Int("frequent_pairs", len(pairs)).
		Int("workers", a.workers).
		Msg("counting complete")

	created := a.clock()
	rules := DeriveRules(singletons, pairs, len(tx), created)

	a.markRun()

	return &recommend.MiningResult{
		Rules:         rules,
		Sessions:      len(tx),
		FrequentItems: len(singletons),
		FrequentPairs: len(pairs),
	}, nil
}
