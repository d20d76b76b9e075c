// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package middleware provides HTTP middleware shared across the API:
// request ID propagation for log correlation and Prometheus request
// instrumentation. Rate limiting and CORS use go-chi's httprate and
// cors packages directly in the router.
package middleware
