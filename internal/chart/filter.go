// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import "sort"

// FilterResult is the projection of raw parallel arrays into per-series
// point lists plus the union set of reading timestamps.
type FilterResult struct {
	// Series holds one entry per requested name, in request order, each
	// sorted ascending by time. Series with no in-window points are
	// present with an empty point list.
	Series []Series

	// ReadingTimestamps contains every in-window timestamp at which at
	// least one requested series had a finite value, sorted ascending.
	// Gap detection runs over this union so all series share the same
	// visual gap indicators regardless of which metric is plotted.
	ReadingTimestamps []int64
}

// FilterSeries projects raw parallel arrays (timestamps plus one aligned
// value array per metric) into per-series ordered point lists restricted
// to the window. Non-finite timestamps and values are dropped silently;
// telemetry from intermittently-connected hardware is inherently noisy
// and missing readings are not errors.
//
// The input arrays are assumed append-ordered, but the point lists are
// sorted before segment building regardless.
func FilterSeries(timestamps []float64, valuesByName map[string][]float64, names []string, w Window) FilterResult {
	res := FilterResult{
		Series: make([]Series, 0, len(names)),
	}

	for _, name := range names {
		values := valuesByName[name]
		points := make([]Sample, 0, len(values))
		for i, t := range timestamps {
			if i >= len(values) {
				break
			}
			if !isFinite(t) || !w.Contains(int64(t)) {
				continue
			}
			if v := values[i]; isFinite(v) {
				points = append(points, Sample{T: int64(t), V: v})
			}
		}
		sort.Slice(points, func(a, b int) bool { return points[a].T < points[b].T })
		res.Series = append(res.Series, Series{Name: name, Points: points})
	}

	res.ReadingTimestamps = unionReadingTimes(timestamps, valuesByName, names, w)
	return res
}

// unionReadingTimes collects the in-window timestamps where any requested
// series had a finite value.
func unionReadingTimes(timestamps []float64, valuesByName map[string][]float64, names []string, w Window) []int64 {
	out := make([]int64, 0, len(timestamps))
	for i, t := range timestamps {
		if !isFinite(t) || !w.Contains(int64(t)) {
			continue
		}
		for _, name := range names {
			values := valuesByName[name]
			if i < len(values) && isFinite(values[i]) {
				out = append(out, int64(t))
				break
			}
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
