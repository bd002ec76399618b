// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

// Package recommend implements "people who bought X also bought Y" rule mining.
//
// # Architecture
//
// Purchase events are grouped into per-session transactions, frequent single
// items and item pairs are counted under a minimum-support cutoff, and every
// frequent pair yields two directional rules scored by support and confidence:
//
//	support(A -> B)    = freq({A,B}) / N
//	confidence(A -> B) = freq({A,B}) / freq({A})
//
// where N is the number of sessions in the run.
//
// The counting itself lives in the algorithms subpackage. This package holds
// the domain types, configuration, error types, and the Engine that drives a
// run end to end: read events from a Repository, mine rules with a RuleMiner,
// write the rule batch back.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	engine.SetRepository(db.EventRepository("buy"))
//	engine.SetMiner(algorithms.NewAssociationRules(algorithms.AssociationConfig{}))
//
//	summary, err := engine.Run(ctx)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Only one run executes at a time;
// a second Run while one is active returns ErrRunInProgress. Every run builds
// fresh counters, so nothing is shared between runs except the status record.
package recommend
