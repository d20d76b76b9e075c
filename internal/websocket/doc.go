// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

/*
Package websocket provides real-time push of telemetry events to open
dashboards using gorilla/websocket.

The Hub owns the set of connected clients and runs a single event loop
(RunWithContext, supervised by suture). Handlers never touch clients
directly: they call the Broadcast* methods, which enqueue onto a
buffered channel and drop the message if the hub is saturated rather
than block the ingest path.

Message types:
  - reading:      one freshly stored telemetry sample
  - stats_update: refreshed network-wide summary
  - device_state: device registered / updated / revoked / deleted
  - ping, pong:   client liveness

Slow clients are disconnected when their per-client send buffer fills,
so one stalled browser tab cannot back-pressure the rest.
*/
package websocket
