// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package web serves the server-rendered dashboard: a device index and a
// per-device chart page with an inline SVG built from a draw plan.
//
// The SVG renderer is deliberately thin. All geometry (pixel
// coordinates, axis bounds, gap breaks, label positions) comes
// pre-computed in the chart.DrawPlan; this package only turns that plan
// into markup. Rendering decisions live in one place and the HTML and
// JSON surfaces can never disagree about what the chart looks like.
package web
