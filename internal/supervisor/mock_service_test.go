// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*mockService)(nil)

// mockService is a controllable suture.Service.
type mockService struct {
	name       string
	startCount atomic.Int32
	failCount  atomic.Int32
	started    chan struct{}

	mu       sync.Mutex
	maxFails int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name, started: make(chan struct{}, 16)}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}

	m.mu.Lock()
	maxFails := m.maxFails
	m.mu.Unlock()

	if maxFails > 0 && m.failCount.Add(1) <= maxFails {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

// setFailCount makes the next n calls to Serve fail immediately.
func (m *mockService) setFailCount(n int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxFails = n
}

func (m *mockService) String() string {
	return m.name
}
