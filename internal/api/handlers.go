// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/copurchase/internal/cache"
	"github.com/tomtom215/copurchase/internal/database"
	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/recommend"
)

const (
	// readyTimeout bounds the repository ping behind /health/ready.
	readyTimeout = 2 * time.Second

	// rulesCacheTTL bounds staleness if a run-completed callback is missed.
	rulesCacheTTL = 5 * time.Minute
)

// MiningEngine is the part of *recommend.Engine the API drives.
type MiningEngine interface {
	Run(ctx context.Context) (*recommend.RunSummary, error)
	GetStatus() recommend.RunStatus
	GetConfig() *recommend.Config
}

// RuleStore reads persisted rules. Satisfied by *database.EventRepository.
type RuleStore interface {
	ListRules(ctx context.Context, filter database.RuleFilter) ([]recommend.Rule, error)
	Ping(ctx context.Context) error
}

// Handler serves the copurchase HTTP endpoints.
type Handler struct {
	engine     MiningEngine
	store      RuleStore
	rulesCache *cache.Cache[RulesResponse]
}

// NewHandler creates a handler over engine and store. Call Close to release
// the rules cache.
func NewHandler(engine MiningEngine, store RuleStore) *Handler {
	return &Handler{
		engine:     engine,
		store:      store,
		rulesCache: cache.New[RulesResponse]("rules", rulesCacheTTL),
	}
}

// OnRunCompleted drops cached rule listings once a run has written a new
// batch. Register it with Engine.SetOnRunCompleted.
func (h *Handler) OnRunCompleted(summary *recommend.RunSummary) {
	cleared := h.rulesCache.Clear()
	logging.Debug().
		Str("run_id", summary.RunID).
		Int("entries", cleared).
		Msg("Rules cache cleared after mining run")
}

// Close stops the rules cache janitor.
func (h *Handler) Close() {
	h.rulesCache.Close()
}

// HealthLive handles GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready
// Returns 503 until the repository answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Repository is not reachable", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}

// RulesQuery holds the validated query parameters of GET /api/v1/rules.
type RulesQuery struct {
	Source string `validate:"omitempty,itemid"`
	Limit  int    `validate:"min=1,max=1000"`
}

// RulesResponse is the payload of GET /api/v1/rules.
type RulesResponse struct {
	Rules []recommend.Rule `json:"rules"`
	Count int              `json:"count"`
}

// ListRules handles GET /api/v1/rules?source=&limit=
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := r.URL.Query()

	query := RulesQuery{
		Source: params.Get("source"),
		Limit:  database.DefaultRuleLimit,
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer", nil)
			return
		}
		query.Limit = limit
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	cacheKey := cache.GenerateKey("rules", query)
	if cached, ok := h.rulesCache.Get(cacheKey); ok {
		respondSuccess(w, http.StatusOK, cached, start)
		return
	}

	rules, err := h.store.ListRules(r.Context(), database.RuleFilter{
		Source: query.Source,
		Limit:  query.Limit,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list rules", err)
		return
	}

	resp := RulesResponse{Rules: rules, Count: len(rules)}
	h.rulesCache.Set(cacheKey, resp)
	respondSuccess(w, http.StatusOK, resp, start)
}

// TriggerRun handles POST /api/v1/mining/runs
// The run is detached from client cancellation and bounded by the engine timeout.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.engine.Run(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, recommend.ErrRunInProgress):
		respondError(w, r, http.StatusConflict, "RUN_IN_PROGRESS", "A mining run is already in progress", nil)
		return
	case errors.Is(err, recommend.ErrNoRepository), errors.Is(err, recommend.ErrNoMiner):
		respondError(w, r, http.StatusServiceUnavailable, "ENGINE_NOT_READY", "Mining engine is not configured", err)
		return
	case recommend.IsValidationError(err):
		respondError(w, r, http.StatusUnprocessableEntity, "INVALID_EVENTS", err.Error(), err)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "MINING_ERROR", "Mining run failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, summary, start)
}

// MiningSettings is the engine configuration exposed by the status endpoint.
type MiningSettings struct {
	MinSupport     float64 `json:"min_support"`
	EventType      string  `json:"event_type"`
	Workers        int     `json:"workers"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
}

// MiningStatusResponse is the payload of GET /api/v1/mining/status.
type MiningStatusResponse struct {
	Run    recommend.RunStatus `json:"run"`
	Config MiningSettings      `json:"config"`
}

// MiningStatus handles GET /api/v1/mining/status
func (h *Handler) MiningStatus(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	cfg := h.engine.GetConfig()

	respondSuccess(w, http.StatusOK, MiningStatusResponse{
		Run: h.engine.GetStatus(),
		Config: MiningSettings{
			MinSupport:     cfg.MinSupport,
			EventType:      cfg.EventType,
			Workers:        cfg.Workers,
			TimeoutSeconds: cfg.Timeout.Seconds(),
		},
	}, start)
}
