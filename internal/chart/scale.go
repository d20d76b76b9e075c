// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import (
	"math"
	"strconv"
)

// NiceBounds computes human-friendly axis bounds for the value range
// [minV, maxV] with roughly tickCount ticks. The step is chosen from the
// 1/2/5/10 x 10^k family, then min is snapped down and max snapped up to
// step multiples, so the returned bounds always enclose the input range.
//
// Non-finite input returns the fixed fallback {0, 1, 1} rather than an
// error: axis scaling sits at the bottom of the redraw path and must
// never fail on noisy telemetry.
func NiceBounds(minV, maxV float64, tickCount int) Bounds {
	if !isFinite(minV) || !isFinite(maxV) {
		return Bounds{Min: 0, Max: 1, Step: 1}
	}

	if minV > maxV {
		minV, maxV = maxV, minV
	}

	// Degenerate range: pad symmetrically so a flat series still gets a
	// readable axis.
	if minV == maxV {
		pad := 1.0
		if minV != 0 {
			pad = math.Abs(minV) * 0.1
		}
		minV -= pad
		maxV += pad
	}

	intervals := tickCount - 1
	if intervals < 1 {
		intervals = 1
	}
	rawStep := (maxV - minV) / float64(intervals)

	step := niceStep(rawStep)

	lo := math.Floor(minV/step) * step
	hi := math.Ceil(maxV/step) * step
	if lo == hi {
		hi += step
	}

	return Bounds{Min: lo, Max: hi, Step: step}
}

// niceStep rounds rawStep up to the nearest member of {1, 2, 5, 10} x 10^k
// where k = floor(log10(rawStep)).
func niceStep(rawStep float64) float64 {
	exp := math.Floor(math.Log10(rawStep))
	magnitude := math.Pow(10, exp)
	mantissa := rawStep / magnitude

	var nice float64
	switch {
	case mantissa <= 1:
		nice = 1
	case mantissa <= 2:
		nice = 2
	case mantissa <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * magnitude
}

// FormatTick renders an axis value with just enough precision for the
// given step: whole steps print as integers, fractional steps keep the
// decimals the step requires.
func FormatTick(v, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
		if decimals > 6 {
			decimals = 6
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
