// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

/*
Package supervisor builds the suture/v4 supervision tree that keeps the
AirBuddy server's long-running components alive.

Tree layout:

	airbuddy (root)
	├── data-layer
	│   └── retention-pruner
	├── messaging-layer
	│   ├── websocket-hub
	│   └── stats-broadcaster
	└── api-layer
	    └── http-server

Each layer restarts independently, so a panicking broadcaster cannot
take down HTTP serving. Supervisor events are logged through sutureslog
into the application's zerolog output via a slog bridge.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewRetentionService(db, days, interval))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, timeout))
	err = tree.Serve(ctx)
*/
package supervisor
