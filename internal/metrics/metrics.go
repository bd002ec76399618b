// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the mining service.
// This package provides instrumentation for:
// - Mining runs (duration, outcome, sizes)
// - Repository query performance
// - API endpoint latency and throughput
// - Response cache efficiency

var (
	// Mining Metrics
	MiningRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mining_runs_total",
			Help: "Total number of mining runs by outcome",
		},
		[]string{"status"}, // "success", "error"
	)

	MiningRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mining_run_duration_seconds",
			Help:    "Duration of mining runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	MiningRunInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mining_run_in_progress",
			Help: "Whether a mining run is currently executing (1) or not (0)",
		},
	)

	MiningLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mining_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful mining run",
		},
	)

	MiningEventsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mining_events_read_total",
			Help: "Total number of purchase events read for mining",
		},
	)

	MiningSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mining_sessions",
			Help: "Number of sessions in the last successful run",
		},
	)

	MiningFrequentItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mining_frequent_items",
			Help: "Number of items above the support threshold in the last successful run",
		},
	)

	MiningFrequentPairs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mining_frequent_pairs",
			Help: "Number of counted item pairs in the last successful run",
		},
	)

	MiningRulesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mining_rules_generated_total",
			Help: "Total number of association rules generated",
		},
	)

	// Repository Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_query_duration_seconds",
			Help:    "Duration of repository queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "driver"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_query_errors_total",
			Help: "Total number of repository query errors",
		},
		[]string{"operation", "driver"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)
)

// RecordMiningRun records the outcome and duration of a mining run
func RecordMiningRun(success bool, duration time.Duration) {
	MiningRunDuration.Observe(duration.Seconds())
	if success {
		MiningRunsTotal.WithLabelValues("success").Inc()
		MiningLastSuccess.Set(float64(time.Now().Unix()))
		return
	}
	MiningRunsTotal.WithLabelValues("error").Inc()
}

// RecordMiningResult records the sizes produced by a successful run
func RecordMiningResult(events, sessions, frequentItems, frequentPairs, rules int) {
	MiningEventsRead.Add(float64(events))
	MiningSessions.Set(float64(sessions))
	MiningFrequentItems.Set(float64(frequentItems))
	MiningFrequentPairs.Set(float64(frequentPairs))
	MiningRulesGenerated.Add(float64(rules))
}

// RecordDBQuery records a repository query metric
func RecordDBQuery(operation, driver string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, driver).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, driver).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
