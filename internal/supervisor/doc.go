// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package supervisor provides process supervision for Callboard using suture v4.

The tree has two layers so a crashing housekeeping task never takes the API
down with it:

	RootSupervisor ("callboard")
	├── BackgroundSupervisor ("background-layer")
	│   └── token cache janitor (OAuth credentials only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events are logged through sutureslog, which writes to the
application's zerolog logger via logging.NewSlogLogger.

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning an error restarts the service. Returning after context
cancellation is a clean stop.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
