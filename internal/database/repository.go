// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"context"

	"github.com/tomtom215/copurchase/internal/recommend"
)

// EventRepository binds a DB to one event type so it can serve as the
// mining engine's recommend.Repository.
type EventRepository struct {
	db        *DB
	eventType string
}

var _ recommend.Repository = (*EventRepository)(nil)

// NewEventRepository returns a repository reading events of eventType.
func NewEventRepository(db *DB, eventType string) *EventRepository {
	return &EventRepository{db: db, eventType: eventType}
}

// EventType returns the collector event type this repository reads.
func (r *EventRepository) EventType() string {
	return r.eventType
}

// ReadEvents implements recommend.Repository.
func (r *EventRepository) ReadEvents(ctx context.Context) ([]recommend.Event, error) {
	return r.db.ReadEvents(ctx, r.eventType)
}

// WriteRules implements recommend.Repository.
func (r *EventRepository) WriteRules(ctx context.Context, rules []recommend.Rule) error {
	return r.db.WriteRules(ctx, rules)
}

// ListRules returns persisted rules matching filter.
func (r *EventRepository) ListRules(ctx context.Context, filter RuleFilter) ([]recommend.Rule, error) {
	return r.db.ListRules(ctx, filter)
}

// Ping checks the underlying connection.
func (r *EventRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
