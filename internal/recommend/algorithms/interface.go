// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/copurchase/internal/recommend"
)

// BaseAlgorithm provides common bookkeeping for all miners.
type BaseAlgorithm struct {
	name      string
	runs      int
	lastRunAt time.Time
	mu        sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// Runs returns the number of completed Mine calls.
func (b *BaseAlgorithm) Runs() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.runs
}

// LastRunAt returns when Mine last completed.
func (b *BaseAlgorithm) LastRunAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastRunAt
}

// markRun records a completed Mine call.
func (b *BaseAlgorithm) markRun() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runs++
	b.lastRunAt = time.Now()
}

// Ensure all miners implement the interface.
var (
	_ recommend.RuleMiner = (*AssociationRules)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
