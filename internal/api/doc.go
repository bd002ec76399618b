// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package api provides the HTTP surface for copurchase using the Chi router.

# Endpoints

	GET  /api/v1/health/live     process is up
	GET  /api/v1/health/ready    repository ping succeeds
	GET  /api/v1/rules           persisted rules (?source=&limit=)
	POST /api/v1/mining/runs     run the miner now (409 while a run is active)
	GET  /api/v1/mining/status   last run summary and mining settings
	GET  /metrics                Prometheus exposition

# Responses

Every JSON endpoint returns the same envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": "...", "query_time_ms": 3},
	  "error": {"code": "...", "message": "..."}
	}

# Caching

Rule listings are cached per (source, limit) in an internal/cache TTL cache.
Handler.OnRunCompleted clears it; wire it with Engine.SetOnRunCompleted so
every run that writes rules, scheduled or triggered, invalidates stale pages.

# Middleware

Requests pass through request ID and correlation ID tagging, chi's RealIP and
Recoverer, per-IP rate limiting from go-chi/httprate, and Prometheus request
metrics labelled by route pattern.
*/
package api
