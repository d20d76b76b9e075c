// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package metrics exposes Prometheus instrumentation for the AirBuddy
// server. All collectors are registered with the default registry via
// promauto at package load; the /metrics endpoint serves them with
// promhttp.Handler.
package metrics
