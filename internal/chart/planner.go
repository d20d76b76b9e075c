// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import (
	"math"
	"time"
)

// Input is the raw data contract from the data-fetch layer: one timestamp
// array plus one value array per metric, all index-aligned. NaN entries
// represent missing readings.
type Input struct {
	Timestamps []float64
	Values     map[string][]float64
}

// BuildPlan runs the full pipeline for one redraw: window selection,
// series filtering, segment building, and planning. It is the single
// entry point handlers use; Plan remains exported for callers that
// already hold a filtered window.
func BuildPlan(in Input, rangeKey string, cfg Config) *DrawPlan {
	cfg = cfg.withDefaults()

	w, ok := SelectWindow(in.Timestamps, rangeKey, nil)
	if !ok {
		return emptyPlan(Window{}, cfg)
	}

	names := make([]string, len(cfg.Series))
	for i, sc := range cfg.Series {
		names[i] = sc.Name
	}
	filtered := FilterSeries(in.Timestamps, in.Values, names, w)

	return Plan(filtered, w, cfg)
}

// Plan combines filtered series into a complete draw plan: shared nice
// Y-bounds across every series in view, an affine time-to-x / value-to-y
// mapping, broken segments per series, shared gap markers, and axis
// labels. If no series has any point in the window it returns the empty
// sentinel plan so the caller renders an explicit "no data in range"
// state.
func Plan(filtered FilterResult, w Window, cfg Config) *DrawPlan {
	cfg = cfg.withDefaults()

	lo, hi, any := valueExtent(filtered.Series)
	if !any {
		return emptyPlan(w, cfg)
	}
	bounds := NiceBounds(lo, hi, cfg.TickCount)

	timeToX := TimeToX(w, cfg.Layout)
	valueToY := ValueToY(bounds, cfg.Layout)

	plan := &DrawPlan{
		Window: w,
		Bounds: bounds,
		Layout: cfg.Layout,
		Series: make([]PlannedSeries, 0, len(filtered.Series)),
	}

	for i, s := range filtered.Series {
		style := cfg.styleFor(i, s.Name)
		ps := PlannedSeries{
			Name:  s.Name,
			Label: style.Label,
			Color: style.Color,
			Width: style.Width,
		}
		for _, run := range BuildSegments(s.Points, cfg.MaxGapSeconds) {
			seg := Segment{Points: make([]Point, len(run))}
			for j, p := range run {
				seg.Points[j] = Point{T: p.T, V: p.V, X: timeToX(p.T), Y: valueToY(p.V)}
			}
			ps.Segments = append(ps.Segments, seg)
		}
		plan.Series = append(plan.Series, ps)
	}

	plan.GapMarkers = BuildGapMarkers(filtered.ReadingTimestamps, cfg.MaxGapSeconds)
	for i := range plan.GapMarkers {
		plan.GapMarkers[i].X = timeToX(plan.GapMarkers[i].At)
	}

	plan.XLabels = xLabels(w, cfg, timeToX)
	plan.YLabels = yLabels(bounds, cfg, valueToY)

	return plan
}

// TimeToX returns the affine time-to-pixel mapping for a window. When the
// window has zero span (a single-point plot) every timestamp maps to the
// horizontal center of the plot area; this is the explicit branch that
// avoids dividing by zero.
func TimeToX(w Window, l Layout) func(t int64) float64 {
	span := float64(w.Span())
	if span <= 0 {
		center := l.PadLeft + l.PlotWidth()/2
		return func(int64) float64 { return center }
	}
	return func(t int64) float64 {
		return l.PadLeft + float64(t-w.Cutoff)/span*l.PlotWidth()
	}
}

// ValueToY returns the affine value-to-pixel mapping for nice bounds.
// NiceBounds guarantees Max > Min, so the span is never zero.
func ValueToY(b Bounds, l Layout) func(v float64) float64 {
	span := b.Max - b.Min
	return func(v float64) float64 {
		return l.PadTop + (1-(v-b.Min)/span)*l.PlotHeight()
	}
}

// valueExtent gathers the min and max finite value across all series in
// view. any is false when no series has a single point.
func valueExtent(series []Series) (lo, hi float64, any bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !any {
				lo, hi = p.V, p.V
				any = true
				continue
			}
			lo = math.Min(lo, p.V)
			hi = math.Max(hi, p.V)
		}
	}
	return lo, hi, any
}

// xLabels places three time labels: window start, midpoint, and end.
func xLabels(w Window, cfg Config, timeToX func(int64) float64) []XLabel {
	stamps := []int64{w.Cutoff, w.Cutoff + w.Span()/2, w.Latest}
	labels := make([]XLabel, len(stamps))
	for i, t := range stamps {
		labels[i] = XLabel{T: t, X: timeToX(t), Text: cfg.FormatTime(t)}
	}
	return labels
}

// yLabels places tickCount evenly spaced value labels across the bounds.
func yLabels(b Bounds, cfg Config, valueToY func(float64) float64) []YLabel {
	n := cfg.TickCount
	labels := make([]YLabel, n)
	for i := 0; i < n; i++ {
		v := b.Min + (b.Max-b.Min)*float64(i)/float64(n-1)
		labels[i] = YLabel{V: v, Y: valueToY(v), Text: FormatTick(v, b.Step)}
	}
	return labels
}

func emptyPlan(w Window, cfg Config) *DrawPlan {
	return &DrawPlan{
		Empty:  true,
		Window: w,
		Layout: cfg.Layout,
		Series: []PlannedSeries{},
	}
}

func (c Config) withDefaults() Config {
	if c.Layout == (Layout{}) {
		c.Layout = DefaultLayout
	}
	if c.TickCount < 2 {
		c.TickCount = DefaultTickCount
	}
	if c.MaxGapSeconds <= 0 {
		c.MaxGapSeconds = DefaultMaxGapSeconds
	}
	if c.FormatTime == nil {
		c.FormatTime = defaultFormatTime
	}
	return c
}

func (c Config) styleFor(i int, name string) SeriesConfig {
	if i < len(c.Series) && c.Series[i].Name == name {
		sc := c.Series[i]
		if sc.Label == "" {
			sc.Label = sc.Name
		}
		if sc.Width <= 0 {
			sc.Width = 1.5
		}
		return sc
	}
	return SeriesConfig{Name: name, Label: name, Color: "#888888", Width: 1.5}
}

func defaultFormatTime(t int64) string {
	return time.Unix(t, 0).UTC().Format("Jan 2 15:04")
}
