// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/copurchase/internal/recommend"
)

// CountSingletons counts item occurrences across all transactions and keeps
// the items whose count is strictly greater than minSupport * N, where N is
// the number of transactions.
//
// Every occurrence counts, including repeats within a session.
// minSupport is expected to be validated by the caller.
func CountSingletons(tx recommend.Transactions, minSupport float64) recommend.ItemsetCounts {
	counts, _ := countSingletons(context.Background(), tx, minSupport, 1)
	return counts
}

// CountPairs counts, once per session, every unordered pair of distinct items
// in that session whose members are both keys of singletons.
func CountPairs(tx recommend.Transactions, singletons recommend.ItemsetCounts) recommend.ItemsetCounts {
	counts, _ := countPairs(context.Background(), tx, singletons, 1)
	return counts
}

// countSingletons is the sharded form of CountSingletons.
// Partial occurrence counts are summed before the threshold is applied.
func countSingletons(ctx context.Context, tx recommend.Transactions, minSupport float64, workers int) (recommend.ItemsetCounts, error) {
	raw, err := countShards(ctx, shardSessions(tx, workers), func(ctx context.Context, sessions []string) (map[string]int, error) {
		return countOccurrences(ctx, tx, sessions)
	})
	if err != nil {
		return nil, err
	}

	threshold := minSupport * float64(len(tx))
	singletons := make(recommend.ItemsetCounts)
	for item, count := range raw {
		if float64(count) > threshold {
			singletons[recommend.Singleton(item)] = count
		}
	}

	return singletons, nil
}

// countPairs is the sharded form of CountPairs.
func countPairs(ctx context.Context, tx recommend.Transactions, singletons recommend.ItemsetCounts, workers int) (recommend.ItemsetCounts, error) {
	raw, err := countShards(ctx, shardSessions(tx, workers), func(ctx context.Context, sessions []string) (map[recommend.Itemset]int, error) {
		return countSessionPairs(ctx, tx, sessions, singletons)
	})
	if err != nil {
		return nil, err
	}
	return recommend.ItemsetCounts(raw), nil
}

// countOccurrences counts every item occurrence in the given sessions.
func countOccurrences(ctx context.Context, tx recommend.Transactions, sessions []string) (map[string]int, error) {
	counts := make(map[string]int)

	for _, id := range sessions {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		for _, item := range tx[id] {
			counts[item]++
		}
	}

	return counts, nil
}

// countSessionPairs counts supported pairs in the given sessions.
func countSessionPairs(ctx context.Context, tx recommend.Transactions, sessions []string, singletons recommend.ItemsetCounts) (map[recommend.Itemset]int, error) {
	counts := make(map[recommend.Itemset]int)

	for _, id := range sessions {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		items := uniqueItems(tx[id])
		if len(items) < 2 {
			continue
		}

		for i := 0; i < len(items); i++ {
			if _, ok := singletons[recommend.Singleton(items[i])]; !ok {
				continue
			}
			for j := i + 1; j < len(items); j++ {
				if _, ok := singletons[recommend.Singleton(items[j])]; !ok {
					continue
				}
				counts[recommend.Pair(items[i], items[j])]++
			}
		}
	}

	return counts, nil
}

// uniqueItems returns items with duplicates removed, first occurrence wins.
func uniqueItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// shardSessions splits the session ids round-robin across at most workers
// shards. Ids are sorted first so shard contents are deterministic.
func shardSessions(tx recommend.Transactions, workers int) [][]string {
	ids := make([]string, 0, len(tx))
	for id := range tx {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers == 0 {
		return nil
	}

	shards := make([][]string, workers)
	for i, id := range ids {
		shards[i%workers] = append(shards[i%workers], id)
	}
	return shards
}

// countShards runs count over every shard and sums the partial results.
// A single shard runs on the calling goroutine.
func countShards[K comparable](ctx context.Context, shards [][]string, count func(context.Context, []string) (map[K]int, error)) (map[K]int, error) {
	if len(shards) <= 1 {
		var sessions []string
		if len(shards) == 1 {
			sessions = shards[0]
		}
		return count(ctx, sessions)
	}

	partials := make([]map[K]int, len(shards))
	errs := make([]error, len(shards))

	var wg sync.WaitGroup
	for w, shard := range shards {
		wg.Add(1)
		go func(w int, sessions []string) {
			defer wg.Done()
			partials[w], errs[w] = count(ctx, sessions)
		}(w, shard)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := make(map[K]int)
	for _, partial := range partials {
		for key, n := range partial {
			merged[key] += n
		}
	}
	return merged, nil
}
