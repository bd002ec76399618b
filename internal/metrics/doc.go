// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto at
package initialization and exposed by the API router at /metrics:

	curl http://localhost:8089/metrics

# Available Metrics

Mining Metrics:
  - mining_runs_total: Completed runs (counter)
    Labels: status (success, error)
  - mining_run_duration_seconds: Run latency including repository I/O (histogram)
  - mining_run_in_progress: 1 while a run executes (gauge)
  - mining_last_success_timestamp_seconds: Unix time of the last successful run (gauge)
  - mining_events_read_total: Purchase events read (counter)
  - mining_sessions, mining_frequent_items, mining_frequent_pairs: Sizes of
    the last successful run (gauges)
  - mining_rules_generated_total: Rules emitted (counter)

Repository Metrics:
  - repository_query_duration_seconds: Query time (histogram)
    Labels: operation (read_events, insert_events, write_rules, list_rules, ...), driver
  - repository_query_errors_total: Failed queries (counter)
    Labels: operation, driver

API Metrics:
  - api_requests_total: Requests served (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Lookups by outcome (counters)
    Labels: cache

# Example PromQL

	# Mining failures over the last day
	increase(mining_runs_total{status="error"}[1d])

	# Hours since the rules were last refreshed
	(time() - mining_last_success_timestamp_seconds) / 3600

	# p95 rule lookup latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket{endpoint="/api/v1/rules"}[5m]))

# Thread Safety

All recording functions are safe for concurrent use. The Prometheus client
library handles synchronization internally.
*/
package metrics
