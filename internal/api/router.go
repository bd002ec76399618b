// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds HTTP middleware settings.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow per client IP. 0 disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// RequestTimeout bounds read endpoints. Mining runs use the engine timeout.
	RequestTimeout time.Duration
}

// NewRouter configures all HTTP routes.
//
//nolint:gocritic // RouterConfig is small and passed once at startup
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// Health endpoints are not rate limited so probes never see 429
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(RateLimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Group(func(r chi.Router) {
			if cfg.RequestTimeout > 0 {
				r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
			}
			r.Get("/api/v1/rules", h.ListRules)
			r.Get("/api/v1/mining/status", h.MiningStatus)
		})

		r.Post("/api/v1/mining/runs", h.TriggerRun)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
