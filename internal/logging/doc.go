// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

// Package logging provides zerolog-based structured logging for copurchase.
//
// JSON output is the default; console output is available for local runs.
// A global logger is configured once at startup and component loggers are
// derived from it with WithComponent.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("server starting")
//	logging.Error().Err(err).Msg("mining run failed")
//
//	// With context (run and correlation IDs)
//	ctx = logging.ContextWithRunID(ctx, summary.RunID)
//	logging.Ctx(ctx).Info().Int("rules", n).Msg("rules written")
//
// # Configuration
//
// Environment Variables (read by the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # Suture Integration
//
// The supervisor tree logs through log/slog. NewSlogLogger returns a
// *slog.Logger whose records are written by the global zerolog logger.
package logging
