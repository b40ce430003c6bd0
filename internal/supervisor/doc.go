// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package supervisor runs the long-lived parts of the Setlist server under a
suture v4 supervisor tree.

	RootSupervisor ("setlist")
	├── DataSupervisor ("data-layer")
	│   └── RetrainService (startup retrain, optional schedule)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventService (watermill router for feedback.recorded)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own, so a consumer that keeps failing is
backed off without restarting the HTTP server. Supervisor events are logged
through sutureslog using the slog adapter from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewRetrainService(svc, retrainCfg))
	tree.AddMessagingService(services.NewEventService(bus))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
