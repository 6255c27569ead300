// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package supervisor runs the long-lived Cinemonth services under a suture/v4
tree:

	cinemonth (root)
	├── api-layer
	│   └── http-server
	└── maintenance-layer
	    └── cache-janitor-poster

A crashing service is restarted with backoff by its own layer, so a failing
janitor never takes the HTTP server down. Supervisor events are logged
through sutureslog on top of the zerolog slog adapter:

	logger := slog.New(logging.NewSlogHandler(logging.WithComponent("supervisor")))
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(cache.NewJanitor(enricher.Cache(), 10*time.Minute))
	err = tree.Serve(ctx)
*/
package supervisor
