// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/copurchase/internal/recommend"
	"github.com/tomtom215/copurchase/internal/validation"
)

// PurchaseEvent is a single collector_log row as written by imports.
type PurchaseEvent struct {
	SessionID string    `json:"session_id" validate:"required,itemid"`
	ContentID string    `json:"content_id" validate:"required,itemid"`
	Event     string    `json:"event" validate:"required,itemid"`
	Created   time.Time `json:"created"`
}

// ReadEvents returns the (session_id, content_id) pairs of every collector_log
// row whose event equals eventType, ordered by session then content.
// NULL columns come back as empty strings.
func (db *DB) ReadEvents(ctx context.Context, eventType string) (events []recommend.Event, err error) {
	start := time.Now()
	defer func() { db.observe("read_events", start, err) }()

	query := `
		SELECT
			COALESCE(session_id, '') AS session_id,
			COALESCE(content_id, '') AS content_id
		FROM collector_log
		WHERE event = ?
		ORDER BY session_id, content_id
	`

	rows, err := db.conn.QueryContext(ctx, query, eventType)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer closeWithLog(rows, "event rows")

	events = make([]recommend.Event, 0)
	for rows.Next() {
		var e recommend.Event
		if err = rows.Scan(&e.SessionID, &e.ItemID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// InsertEvents validates and appends events to collector_log in one
// transaction. A zero Created is stamped with the current UTC time.
// Nothing is written if any event fails validation.
func (db *DB) InsertEvents(ctx context.Context, events []PurchaseEvent) (inserted int, err error) {
	for i := range events {
		if verr := validation.ValidateStruct(&events[i]); verr != nil {
			return 0, fmt.Errorf("event %d: %w", i, verr)
		}
	}
	if len(events) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { db.observe("insert_events", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO collector_log (session_id, content_id, event, created) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert event: %w", err)
	}
	defer closeWithLog(stmt, "insert event statement")

	now := time.Now().UTC()
	for i := range events {
		e := &events[i]
		created := e.Created
		if created.IsZero() {
			created = now
		}
		if _, err = stmt.ExecContext(ctx, e.SessionID, e.ContentID, e.Event, created.UTC()); err != nil {
			return 0, fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit events: %w", err)
	}

	return len(events), nil
}

// CountEvents returns the number of collector_log rows with the given event type.
func (db *DB) CountEvents(ctx context.Context, eventType string) (count int, err error) {
	start := time.Now()
	defer func() { db.observe("count_events", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collector_log WHERE event = ?`, eventType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
