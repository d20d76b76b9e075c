// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import "math"

// HoverHit identifies the sample nearest to the pointer for tooltip
// display.
type HoverHit struct {
	SeriesName string  `json:"series"`
	Time       int64   `json:"time"`
	Value      float64 `json:"value"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Nearest returns the sample with the minimum horizontal pixel distance
// to pointerX across all planned points of all series, or nil when the
// minimum exceeds maxPixelDistance. Ties go to the first series in plan
// order, so the result is deterministic.
func Nearest(plan *DrawPlan, pointerX, maxPixelDistance float64) *HoverHit {
	if plan == nil || plan.Empty {
		return nil
	}
	if maxPixelDistance <= 0 {
		maxPixelDistance = DefaultHoverMaxDistance
	}

	var best *HoverHit
	bestDist := math.Inf(1)

	for _, s := range plan.Series {
		for _, seg := range s.Segments {
			for _, p := range seg.Points {
				d := math.Abs(p.X - pointerX)
				if d < bestDist {
					bestDist = d
					best = &HoverHit{
						SeriesName: s.Name,
						Time:       p.T,
						Value:      p.V,
						X:          p.X,
						Y:          p.Y,
					}
				}
			}
		}
	}

	if best == nil || bestDist > maxPixelDistance {
		return nil
	}
	return best
}
