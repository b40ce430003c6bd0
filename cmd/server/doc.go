// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package main is the entry point for the Setlist server.

Setlist recommends songs from a CSV catalog. A listener describes a target
(tempo, energy, year range and so on), the server blends content similarity
with a profile learned from like/dislike feedback, and returns the best
matching songs as JSON.

# Application Architecture

	RootSupervisor ("setlist")
	├── DataSupervisor ("data-layer")
	│   └── RetrainService (startup retrain, optional schedule)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventService (watermill router, feedback.recorded)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Initialization order:

 1. Configuration: Koanf v2 with defaults, YAML file and environment
 2. Logging: zerolog, JSON or console
 3. Feedback store: JSON file or DuckDB behind a gobreaker circuit breaker
 4. Session log: BadgerDB (optional)
 5. Recommender: catalog loaded from the persisted source selection
 6. Event bus: watermill GoChannel with retry and recovery middleware
 7. Supervisor tree and HTTP server

# Configuration

Every key can be set in config.yaml or through the environment, for example:

	SERVER_PORT=5000
	LOG_LEVEL=debug
	CATALOG_DEFAULT_PATH=data/mainSong.csv
	FEEDBACK_BACKEND=duckdb
	RECOMMEND_RETRAIN_INTERVAL=1h
	RECOMMEND_RETRAIN_ON_FEEDBACK=true

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
server.shutdown_timeout, the event router closes, then the session log and
feedback store are closed.
*/
package main
