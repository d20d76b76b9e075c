// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import "sort"

// BuildSegments splits a time-ascending point list into drawable runs,
// starting a new run whenever the gap between consecutive timestamps
// exceeds maxGapSeconds. A run with a single point is valid and renders
// as an isolated marker. maxGapSeconds <= 0 falls back to
// DefaultMaxGapSeconds.
func BuildSegments(points []Sample, maxGapSeconds int64) [][]Sample {
	if len(points) == 0 {
		return nil
	}
	if maxGapSeconds <= 0 {
		maxGapSeconds = DefaultMaxGapSeconds
	}

	segments := make([][]Sample, 0, 1)
	start := 0
	for i := 1; i < len(points); i++ {
		if points[i].T-points[i-1].T > maxGapSeconds {
			segments = append(segments, points[start:i])
			start = i
		}
	}
	return append(segments, points[start:])
}

// BuildGapMarkers emits one marker per reporting outage: wherever two
// consecutive reading timestamps differ by more than maxGapSeconds, the
// marker sits at the earlier (last good) timestamp. The input is the
// union of all series' reading times, so every series shares the same
// gap indicators.
func BuildGapMarkers(readingTimestamps []int64, maxGapSeconds int64) []GapMarker {
	if maxGapSeconds <= 0 {
		maxGapSeconds = DefaultMaxGapSeconds
	}

	sorted := make([]int64, len(readingTimestamps))
	copy(sorted, readingTimestamps)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })

	var markers []GapMarker
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > maxGapSeconds {
			markers = append(markers, GapMarker{At: sorted[i-1]})
		}
	}
	return markers
}
