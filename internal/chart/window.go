// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

// DefaultRanges maps the dashboard's range keys to lookback hours.
var DefaultRanges = map[string]int{
	"1h":  1,
	"6h":  6,
	"24h": 24,
	"72h": 72,
	"7d":  7 * 24,
	"30d": 30 * 24,
}

// fallbackRangeHours is used for unknown range keys.
const fallbackRangeHours = 24

// RangeHours resolves a range key against the table, defaulting to 24h
// for unknown keys. A nil table uses DefaultRanges.
func RangeHours(rangeKey string, table map[string]int) int {
	if table == nil {
		table = DefaultRanges
	}
	if hours, ok := table[rangeKey]; ok && hours > 0 {
		return hours
	}
	return fallbackRangeHours
}

// SelectWindow computes the visible time window for a range key, anchored
// to the latest observed sample rather than wall-clock time: a device
// that stopped reporting days ago still shows its last window of real
// data instead of an empty chart scrolled past it.
//
// Non-finite timestamps are ignored. If no finite timestamp exists the
// window is undefined and ok is false; callers must render a "no data"
// state instead of a chart.
func SelectWindow(timestamps []float64, rangeKey string, table map[string]int) (w Window, ok bool) {
	var latest int64
	for _, t := range timestamps {
		if !isFinite(t) {
			continue
		}
		ts := int64(t)
		if !ok || ts > latest {
			latest = ts
			ok = true
		}
	}
	if !ok {
		return Window{}, false
	}

	hours := RangeHours(rangeKey, table)
	return Window{
		Cutoff: latest - int64(hours)*3600,
		Latest: latest,
	}, true
}
