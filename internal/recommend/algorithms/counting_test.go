// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/copurchase/internal/recommend"
)

func exampleTransactions() recommend.Transactions {
	return recommend.Transactions{
		"1": {"A", "B"},
		"2": {"A", "B", "C"},
		"3": {"A", "C"},
	}
}

func TestCountSingletons(t *testing.T) {
	tests := []struct {
		name       string
		tx         recommend.Transactions
		minSupport float64
		want       recommend.ItemsetCounts
	}{
		{
			name:       "worked example",
			tx:         exampleTransactions(),
			minSupport: 0.3,
			want: recommend.ItemsetCounts{
				recommend.Singleton("A"): 3,
				recommend.Singleton("B"): 2,
				recommend.Singleton("C"): 2,
			},
		},
		{
			name:       "high threshold keeps only A",
			tx:         exampleTransactions(),
			minSupport: 0.7,
			want: recommend.ItemsetCounts{
				recommend.Singleton("A"): 3,
			},
		},
		{
			name:       "threshold is strict",
			tx:         recommend.Transactions{"1": {"A", "B"}, "2": {"A"}},
			minSupport: 0.5,
			want: recommend.ItemsetCounts{
				recommend.Singleton("A"): 2,
			},
		},
		{
			name:       "duplicates within a session count as occurrences",
			tx:         recommend.Transactions{"1": {"A", "A", "A"}, "2": {"B"}, "3": {"C"}},
			minSupport: 0.5,
			want: recommend.ItemsetCounts{
				recommend.Singleton("A"): 3,
			},
		},
		{
			name:       "empty transactions",
			tx:         recommend.Transactions{},
			minSupport: 0.3,
			want:       recommend.ItemsetCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountSingletons(tt.tx, tt.minSupport)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CountSingletons() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountPairs(t *testing.T) {
	all := recommend.ItemsetCounts{
		recommend.Singleton("A"): 3,
		recommend.Singleton("B"): 2,
		recommend.Singleton("C"): 2,
	}

	tests := []struct {
		name       string
		tx         recommend.Transactions
		singletons recommend.ItemsetCounts
		want       recommend.ItemsetCounts
	}{
		{
			name:       "worked example",
			tx:         exampleTransactions(),
			singletons: all,
			want: recommend.ItemsetCounts{
				recommend.Pair("A", "B"): 2,
				recommend.Pair("A", "C"): 2,
				recommend.Pair("B", "C"): 1,
			},
		},
		{
			name:       "single item sessions contribute nothing",
			tx:         recommend.Transactions{"1": {"A"}, "2": {"A", "A"}},
			singletons: all,
			want:       recommend.ItemsetCounts{},
		},
		{
			name:       "repeated pair counted once per session",
			tx:         recommend.Transactions{"1": {"A", "B", "A", "B"}},
			singletons: all,
			want: recommend.ItemsetCounts{
				recommend.Pair("A", "B"): 1,
			},
		},
		{
			name:       "pairs need both members frequent",
			tx:         exampleTransactions(),
			singletons: recommend.ItemsetCounts{recommend.Singleton("A"): 3, recommend.Singleton("B"): 2},
			want: recommend.ItemsetCounts{
				recommend.Pair("A", "B"): 2,
			},
		},
		{
			name:       "no singletons",
			tx:         exampleTransactions(),
			singletons: recommend.ItemsetCounts{},
			want:       recommend.ItemsetCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountPairs(tt.tx, tt.singletons)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CountPairs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShardSessions(t *testing.T) {
	tx := recommend.Transactions{"a": nil, "b": nil, "c": nil, "d": nil, "e": nil}

	tests := []struct {
		name    string
		workers int
		want    [][]string
	}{
		{"zero workers is one shard", 0, [][]string{{"a", "b", "c", "d", "e"}}},
		{"two workers round robin", 2, [][]string{{"a", "c", "e"}, {"b", "d"}}},
		{"more workers than sessions", 10, [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shardSessions(tx, tt.workers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("shardSessions(%d) = %v, want %v", tt.workers, got, tt.want)
			}
		})
	}

	if got := shardSessions(recommend.Transactions{}, 4); got != nil {
		t.Errorf("shardSessions(empty) = %v, want nil", got)
	}
}

func TestCountSingletons_ShardedMatchesSequential(t *testing.T) {
	// Each session alone is below the threshold; only the merged count passes.
	tx := recommend.Transactions{
		"1": {"A"}, "2": {"A"}, "3": {"A"}, "4": {"B"},
	}

	for _, workers := range []int{1, 2, 3, 4} {
		got, err := countSingletons(context.Background(), tx, 0.5, workers)
		if err != nil {
			t.Fatalf("countSingletons(workers=%d) error = %v", workers, err)
		}
		want := recommend.ItemsetCounts{recommend.Singleton("A"): 3}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("countSingletons(workers=%d) = %v, want %v", workers, got, want)
		}
	}
}

func TestCountPairs_ShardedMatchesSequential(t *testing.T) {
	tx := exampleTransactions()
	singletons := CountSingletons(tx, 0.3)
	want := CountPairs(tx, singletons)

	for _, workers := range []int{2, 3, 8} {
		got, err := countPairs(context.Background(), tx, singletons, workers)
		if err != nil {
			t.Fatalf("countPairs(workers=%d) error = %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("countPairs(workers=%d) = %v, want %v", workers, got, want)
		}
	}
}

func TestCounting_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := countSingletons(ctx, exampleTransactions(), 0.3, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("countSingletons() error = %v, want context.Canceled", err)
	}
	if _, err := countPairs(ctx, exampleTransactions(), recommend.ItemsetCounts{}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("countPairs() error = %v, want context.Canceled", err)
	}
}

func TestUniqueItems(t *testing.T) {
	got := uniqueItems([]string{"B", "A", "B", "C", "A"})
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniqueItems() = %v, want %v", got, want)
	}
}

func TestCounting_EmptySession(t *testing.T) {
	withEmpty := exampleTransactions()
	withEmpty["4"] = nil
	withEmpty["5"] = []string{}

	// An empty session adds nothing to any count.
	singletons := CountSingletons(withEmpty, 0.3)
	if want := CountSingletons(exampleTransactions(), 0.3); !reflect.DeepEqual(singletons, want) {
		t.Errorf("CountSingletons() = %v, want %v", singletons, want)
	}
	pairs := CountPairs(withEmpty, singletons)
	if want := CountPairs(exampleTransactions(), singletons); !reflect.DeepEqual(pairs, want) {
		t.Errorf("CountPairs() = %v, want %v", pairs, want)
	}

	for _, workers := range []int{2, 5} {
		got, err := countPairs(context.Background(), withEmpty, singletons, workers)
		if err != nil {
			t.Fatalf("countPairs(workers=%d) error = %v", workers, err)
		}
		if !reflect.DeepEqual(got, pairs) {
			t.Errorf("countPairs(workers=%d) = %v, want %v", workers, got, pairs)
		}
	}

	// It still counts towards N: 2 > 0.6*3 but 2 <= 0.6*5.
	got := CountSingletons(withEmpty, 0.6)
	want := recommend.ItemsetCounts{recommend.Singleton("A"): 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountSingletons(0.6) = %v, want %v", got, want)
	}

	rules := DeriveRules(singletons, pairs, len(withEmpty), time.Time{})
	for _, r := range rules {
		if r.Source != "A" || r.Target != "B" {
			continue
		}
		if r.Support != 2.0/5.0 {
			t.Errorf("A->B support = %v, want 0.4", r.Support)
		}
		if r.Confidence != 2.0/3.0 {
			t.Errorf("A->B confidence = %v, want 2/3", r.Confidence)
		}
		return
	}
	t.Errorf("rule A->B missing from %v", rules)
}
