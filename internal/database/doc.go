// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

/*
Package database provides DuckDB-backed persistence for devices and
telemetry readings.

Tables:
  - devices: registered sensor nodes with hashed API keys
  - readings: telemetry samples, one row per (device_id, recorded_at)

Idempotent Ingest:
The readings table is keyed on (device_id, recorded_at). Inserts use
ON CONFLICT DO NOTHING, so sensors that replay their backlog after a
connectivity outage never create duplicate rows; the caller learns
whether the row was new from the affected-row count.

Series Queries:
GetSeriesData returns a device's samples as parallel arrays ordered by
recorded_at, with NULL metric columns surfaced as NaN. The span is
anchored to the device's latest stored sample rather than wall clock,
so a stalled sensor still renders its final hours of data.
*/
package database
