// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

/*
Package models defines data structures shared across the AirBuddy server.

This package contains the database models, API request/response structures,
and internal data transfer objects. It serves as the single source of truth
for data structure definitions.

Key Components:

  - Device: Registered sensor node with hashed API key and revocation flag
  - Reading: One telemetry sample row (device, timestamp, five metric columns)
  - IngestRequest: Wire format accepted by POST /api/v1/telemetry
  - SeriesData: Parallel-array query result consumed by the chart planner
  - APIResponse: Standardized API response wrapper

Metric Columns:

Readings carry up to five metrics per sample. Missing metrics are stored
as NULL and surface as NaN in SeriesData so the chart pipeline can drop
them per-series without losing the row.

  - temp_c:     temperature, degrees Celsius
  - rh:         relative humidity, percent
  - eco2_ppm:   equivalent CO2, parts per million
  - tvoc_ppb:   total volatile organic compounds, parts per billion
  - pm25_ugm3:  fine particulate matter, micrograms per cubic metre
*/
package models
