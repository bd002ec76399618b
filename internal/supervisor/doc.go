// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

/*
Package supervisor provides process supervision for copurchase using suture v4.

# Overview

Long-running services are organized into three layers:

	RootSupervisor ("copurchase")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (DuckDB only)
	├── MiningSupervisor ("mining-layer")
	│   └── MiningService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts its children independently with suture's exponential
backoff. Supervisor events are logged through sutureslog, which writes into
the zerolog-backed slog handler from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMiningService(miningSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
