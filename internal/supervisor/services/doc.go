// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package services provides suture.Service wrappers for copurchase components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve(ctx) error and identifies itself through fmt.Stringer.

# Available Services

Mining (MiningService):
  - Runs the rule mining engine on a cron schedule (robfig/cron/v3)
  - Optionally runs once at startup
  - A failed run is logged and the loop waits for the next activation

Checkpoint (CheckpointService):
  - Periodically flushes the DuckDB WAL into the database file

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe to Serve
*/
package services
