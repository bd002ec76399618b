// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package recommend

import (
	"context"
	"time"
)

// RuleTypeAssociate is the type tag carried by every mined rule.
const RuleTypeAssociate = "associate"

// Event is a single purchase event: an item bought within a session.
// Both ids must be non-empty; GroupTransactions reports a missing one by
// its JSON name.
type Event struct {
	// SessionID identifies the purchase session.
	SessionID string `json:"session_id"`

	// ItemID identifies the purchased item.
	ItemID string `json:"content_id"`
}

// Transactions maps a session id to the items bought in that session,
// in encounter order with duplicates preserved.
type Transactions map[string][]string

// Itemset is a set of one or two items.
//
// Pairs are stored with their members in lexical order so that {A,B} and
// {B,A} compare equal and hash to the same map key.
type Itemset struct {
	first  string
	second string
}

// Singleton returns the one-item itemset {item}.
func Singleton(item string) Itemset {
	return Itemset{first: item}
}

// Pair returns the two-item itemset {a, b}.
func Pair(a, b string) Itemset {
	if a > b {
		a, b = b, a
	}
	return Itemset{first: a, second: b}
}

// Size returns the number of items in the set.
func (s Itemset) Size() int {
	if s.second == "" {
		return 1
	}
	return 2
}

// Items returns the members in lexical order.
func (s Itemset) Items() []string {
	if s.second == "" {
		return []string{s.first}
	}
	return []string{s.first, s.second}
}

// Item returns the member of a singleton.
func (s Itemset) Item() string {
	return s.first
}

// Contains reports whether item is a member of the set.
func (s Itemset) Contains(item string) bool {
	return item == s.first || (s.second != "" && item == s.second)
}

// Other returns the member of a pair that is not item.
// The result is empty when item is not a member or s is a singleton.
func (s Itemset) Other(item string) string {
	if s.second == "" {
		return ""
	}
	switch item {
	case s.first:
		return s.second
	case s.second:
		return s.first
	default:
		return ""
	}
}

// String renders the set as {a} or {a,b}.
func (s Itemset) String() string {
	if s.second == "" {
		return "{" + s.first + "}"
	}
	return "{" + s.first + "," + s.second + "}"
}

// ItemsetCounts maps an itemset to its frequency.
type ItemsetCounts map[Itemset]int

// Rule is a directional association rule: buyers of Source also bought Target.
type Rule struct {
	// Created is the run timestamp shared by every rule of a run.
	Created time.Time `json:"created"`

	// Source is the antecedent item.
	Source string `json:"source"`

	// Target is the consequent item.
	Target string `json:"target"`

	// Confidence is freq({Source,Target}) / freq({Source}).
	Confidence float64 `json:"confidence"`

	// Support is freq({Source,Target}) / N.
	Support float64 `json:"support"`

	// Type is always RuleTypeAssociate.
	Type string `json:"type"`
}

// MiningResult is the output of one RuleMiner invocation.
type MiningResult struct {
	// Rules are the derived rules, sorted.
	Rules []Rule `json:"rules"`

	// Sessions is N, the number of transactions.
	Sessions int `json:"sessions"`

	// FrequentItems is the number of singletons that passed the support filter.
	FrequentItems int `json:"frequent_items"`

	// FrequentPairs is the number of distinct counted pairs.
	FrequentPairs int `json:"frequent_pairs"`
}

// RuleMiner turns a batch of events into association rules.
type RuleMiner interface {
	// Name returns the miner identifier.
	Name() string

	// Mine groups, counts and derives rules for the given events.
	// minSupport must lie strictly between 0 and 1.
	Mine(ctx context.Context, events []Event, minSupport float64) (*MiningResult, error)
}

// Repository is the storage boundary of a run: read every event, write a
// batch of rules. Implementations decide the backing store.
type Repository interface {
	// ReadEvents returns all purchase events to mine.
	ReadEvents(ctx context.Context) ([]Event, error)

	// WriteRules appends a batch of rules.
	WriteRules(ctx context.Context, rules []Rule) error
}

// RunSummary describes a completed run.
type RunSummary struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// DurationMS is the wall time of the run.
	DurationMS int64 `json:"duration_ms"`

	// Events is the number of events read.
	Events int `json:"events"`

	// Sessions is the number of transactions built.
	Sessions int `json:"sessions"`

	// FrequentItems is the number of retained singletons.
	FrequentItems int `json:"frequent_items"`

	// FrequentPairs is the number of counted pairs.
	FrequentPairs int `json:"frequent_pairs"`

	// Rules is the number of rules derived.
	Rules int `json:"rules"`

	// Persisted reports whether the rules were written to the repository.
	Persisted bool `json:"persisted"`
}

// RunStatus reports the engine's current and most recent run.
type RunStatus struct {
	// IsRunning indicates whether a run is in progress.
	IsRunning bool `json:"is_running"`

	// RunCount is the number of completed runs since start.
	RunCount int `json:"run_count"`

	// LastRunAt is when the last run finished.
	LastRunAt time.Time `json:"last_run_at"`

	// LastRunDurationMS is how long the last run took.
	LastRunDurationMS int64 `json:"last_run_duration_ms"`

	// LastError contains the last run error, if any.
	LastError string `json:"last_error,omitempty"`

	// LastSummary is the summary of the last successful run.
	LastSummary *RunSummary `json:"last_summary,omitempty"`
}
