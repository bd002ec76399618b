// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package cache provides a thread-safe in-memory cache with TTL support.

The API keeps rule listings here so repeated lookups for the same source do
not hit the repository. Rules only change when a mining run writes a new
batch, so the cache is cleared from the engine's run-completed callback and
the TTL only bounds staleness if that callback is missed.

# Usage Example

	c := cache.New[RulesResponse]("rules", 5*time.Minute)
	defer c.Close()

	key := cache.GenerateKey("rules", query)
	if resp, ok := c.Get(key); ok {
	    return resp
	}
	resp := load()
	c.Set(key, resp)

	// After a mining run writes rules
	c.Clear()

# Expiration

Expired entries are removed lazily on Get and by a background janitor that
runs every CleanupInterval until Close is called.

# Metrics

Every Get records cache_hits_total or cache_misses_total labelled with the
cache name.
*/
package cache
