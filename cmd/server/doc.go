// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package main is the entry point for the AirBuddy Online server.
//
// AirBuddy Online is a self-hosted telemetry platform for a fleet of
// air-quality sensor nodes. Devices push readings over HTTP, the server
// persists them in DuckDB, and a server-rendered dashboard charts each
// device's recent history with live updates over WebSocket.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB and migrate the telemetry schema
//  3. WebSocket Hub: Enable real-time updates to connected dashboards
//  4. Authentication: Configure JWT sessions and per-device API keys
//  5. Dashboard: Parse the HTML templates for the device index and chart pages
//  6. Supervisor Tree: Retention pruner, hub, stats broadcaster, HTTP server
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (AIRBUDDY_ prefix)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// For JWT authentication (default):
//   - AIRBUDDY_SECURITY_JWT_SECRET: 32+ character secret for token signing
//   - AIRBUDDY_SECURITY_ADMIN_USERNAME: Admin username
//   - AIRBUDDY_SECURITY_ADMIN_PASSWORD_HASH: bcrypt hash of the admin password
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the supervisor tree and closes the database
//
// # Example Usage
//
// Development without authentication:
//
//	export AIRBUDDY_SECURITY_AUTH_MODE=none
//	./airbuddy
//
// Production with JWT:
//
//	export AIRBUDDY_SECURITY_JWT_SECRET=$(openssl rand -base64 32)
//	export AIRBUDDY_SECURITY_ADMIN_USERNAME=admin
//	export AIRBUDDY_SECURITY_ADMIN_PASSWORD_HASH='$2a$10$...'
//	./airbuddy
//
// # Port 4400
//
// The default port 4400 nods to the 44 g/mol molar mass of CO2, the
// gas the fleet watches most closely.
package main
