// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/copurchase/internal/api"
	"github.com/tomtom215/copurchase/internal/database"
	"github.com/tomtom215/copurchase/internal/logging"
	"github.com/tomtom215/copurchase/internal/supervisor"
	"github.com/tomtom215/copurchase/internal/supervisor/services"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and HTTP API under the supervisor tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tree, handler, err := buildTree(a)
			if err != nil {
				return err
			}
			defer handler.Close()

			return serveTree(ctx, tree)
		},
	}
}

// buildTree wires every long-running service into a supervisor tree.
// The returned handler must be closed once the tree has stopped.
func buildTree(a *app) (*supervisor.SupervisorTree, *api.Handler, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	// Data layer
	if a.db.Driver() == database.DriverDuckDB {
		tree.AddDataService(services.NewCheckpointService(
			a.db, services.DefaultCheckpointInterval, logging.WithComponent("checkpoint")))
	}

	// Mining layer
	schedule, err := services.ParseSchedule(a.cfg.Mining.Schedule)
	if err != nil {
		return nil, nil, err
	}
	tree.AddMiningService(services.NewMiningService(a.engine, services.MiningServiceConfig{
		Schedule:     schedule,
		RunOnStartup: a.cfg.Mining.RunOnStartup,
	}, logging.WithComponent("scheduler")))

	// API layer
	handler := api.NewHandler(a.engine, a.repo)
	a.engine.SetOnRunCompleted(handler.OnRunCompleted)

	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: a.cfg.Server.RateLimitRequests,
		RateLimitWindow:   a.cfg.Server.RateLimitWindow,
		RequestTimeout:    a.cfg.Server.Timeout,
	})
	server := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: a.cfg.Server.Timeout,
		IdleTimeout:       2 * a.cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(
		server, services.DefaultShutdownTimeout, logging.WithComponent("http")))

	logging.Info().
		Str("addr", server.Addr).
		Str("schedule", a.cfg.Mining.Schedule).
		Bool("run_on_startup", a.cfg.Mining.RunOnStartup).
		Msg("Starting copurchase with supervisor tree")

	return tree, handler, nil
}

// serveTree runs tree until ctx is cancelled and reports services that
// failed to stop within the shutdown timeout.
func serveTree(ctx context.Context, tree *supervisor.SupervisorTree) error {
	err := tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}
