// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package chart is the time-series chart layout engine.
//
// It turns raw, possibly-gappy, possibly-out-of-order sensor samples into a
// renderable chart description: axis bounds, visible window, broken line
// segments, gap markers, axis labels, and a hover lookup. It produces
// geometry only; actual drawing (SVG, canvas, terminal) is the renderer's
// job (see internal/web).
//
// Pipeline:
//
//	raw parallel arrays + range key
//	    -> SelectWindow   (visible window anchored to latest observed sample)
//	    -> FilterSeries   (per-series ordered point lists, union reading times)
//	    -> BuildSegments  (split on reporting gaps, per series)
//	    -> Plan           (shared bounds, pixel mapping, labels, gap markers)
//	    -> DrawPlan       (consumed by a thin renderer)
//
// Nearest is invoked independently for tooltip lookup, reusing the planned
// points of an existing DrawPlan.
//
// Every function in this package is pure: identical inputs yield identical
// outputs, nothing is mutated in place, and no state survives between
// invocations. Device telemetry is inherently noisy, so non-finite
// timestamps and values are dropped silently rather than reported as
// errors; degenerate ranges are padded, and an empty window produces an
// explicit empty plan instead of a misleading blank chart.
package chart
