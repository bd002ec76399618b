// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

// Package algorithms implements the association rule mining pipeline.
//
// # Pipeline
//
//   - GroupTransactions: events to session -> items, order and duplicates kept
//   - CountSingletons: occurrence counts, kept when count > minSupport * N
//   - CountPairs: one increment per distinct frequent pair per session
//   - DeriveRules: two directional rules per pair, sorted
//
// AssociationRules chains the four steps and implements recommend.RuleMiner.
//
// # Counting Semantics
//
// Singletons are counted by occurrence, not by session membership: an item
// bought twice in one session contributes two to its count. Pairs are
// counted by session membership after de-duplicating the session's items.
// Confidence can therefore drop below what a purely set-based count would
// give for items that repeat within sessions.
//
// # Sharding
//
// With Workers > 1, sessions are split across goroutines. Each shard
// produces raw counts, the partial maps are summed, and only then is the
// support threshold applied. Results are identical to the sequential path.
//
// # Thread Safety
//
// Every Mine call builds its own counters. An AssociationRules value may be
// shared across goroutines.
package algorithms
