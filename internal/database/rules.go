// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/recommend"
)

// Rule listing limits.
const (
	DefaultRuleLimit = 100
	MaxRuleLimit     = 1000
)

// RuleFilter narrows ListRules. A zero Limit means DefaultRuleLimit.
type RuleFilter struct {
	Source string
	Limit  int
}

// WriteRules appends rules to seeded_recs in a single transaction.
// Existing rows are never updated or deduplicated. An empty batch is a no-op.
func (db *DB) WriteRules(ctx context.Context, rules []recommend.Rule) (err error) {
	if len(rules) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { db.observe("write_rules", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO seeded_recs
		(created, source, target, support, confidence, type)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert rule: %w", err)
	}
	defer closeWithLog(stmt, "insert rule statement")

	for i := range rules {
		r := &rules[i]
		if _, err = stmt.ExecContext(ctx, r.Created.UTC(), r.Source, r.Target, r.Support, r.Confidence, r.Type); err != nil {
			return fmt.Errorf("insert rule %s->%s: %w", r.Source, r.Target, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit rules: %w", err)
	}

	logging.Ctx(ctx).Debug().Int("rules", len(rules)).Msg("rules written")
	return nil
}

// ListRules returns persisted rules, newest batch first, then by source and
// target. Limit is clamped to MaxRuleLimit.
func (db *DB) ListRules(ctx context.Context, filter RuleFilter) (rules []recommend.Rule, err error) {
	start := time.Now()
	defer func() { db.observe("list_rules", start, err) }()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultRuleLimit
	}
	if limit > MaxRuleLimit {
		limit = MaxRuleLimit
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		SELECT created, source, target, support, confidence, COALESCE(type, '') AS type
		FROM seeded_recs`)
	if filter.Source != "" {
		sb.WriteString(` WHERE source = ?`)
		args = append(args, filter.Source)
	}
	sb.WriteString(` ORDER BY created DESC, source, target LIMIT ?`)
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer closeWithLog(rows, "rule rows")

	rules = make([]recommend.Rule, 0)
	for rows.Next() {
		var r recommend.Rule
		if err = rows.Scan(&r.Created, &r.Source, &r.Target, &r.Support, &r.Confidence, &r.Type); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		r.Created = r.Created.UTC()
		rules = append(rules, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}
