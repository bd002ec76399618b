// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"sort"
	"time"

	"github.com/tomtom215/copurchase/internal/recommend"
)

// DeriveRules emits a rule s -> p\s for every singleton s and every pair p
// containing s. n is the number of transactions and created is stamped on
// every rule.
//
//	support    = pairs[p] / n
//	confidence = pairs[p] / singletons[s]
//
// The result is sorted with SortRules.
func DeriveRules(singletons, pairs recommend.ItemsetCounts, n int, created time.Time) []recommend.Rule {
	if len(singletons) == 0 || len(pairs) == 0 || n == 0 {
		return []recommend.Rule{}
	}

	// Index pairs by member so each singleton only visits its own pairs
	byItem := make(map[string][]recommend.Itemset, len(singletons))
	for p := range pairs {
		for _, item := range p.Items() {
			byItem[item] = append(byItem[item], p)
		}
	}

	rules := make([]recommend.Rule, 0, 2*len(pairs))
	for s, sFreq := range singletons {
		source := s.Item()
		for _, p := range byItem[source] {
			pFreq := pairs[p]
			rules = append(rules, recommend.Rule{
				Created:    created,
				Source:     source,
				Target:     p.Other(source),
				Confidence: float64(pFreq) / float64(sFreq),
				Support:    float64(pFreq) / float64(n),
				Type:       recommend.RuleTypeAssociate,
			})
		}
	}

	SortRules(rules)
	return rules
}

// SortRules orders rules by (created, source, target, confidence, support).
func SortRules(rules []recommend.Rule) {
	sort.Slice(rules, func(i, j int) bool {
		a, b := &rules[i], &rules[j]
		if !a.Created.Equal(b.Created) {
			return a.Created.Before(b.Created)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Confidence != b.Confidence {
			return a.Confidence < b.Confidence
		}
		return a.Support < b.Support
	})
}
