// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package api provides the HTTP surface: telemetry ingest, chart plans,
// device management, admin auth, stats, health, and the websocket feed.
// Routing uses Chi with go-chi/cors and go-chi/httprate; every JSON
// response is wrapped in the models.APIResponse envelope.
package api
