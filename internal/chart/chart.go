// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import "math"

// Sample is one reading for one series: a unix-second timestamp and a
// finite value. Samples with missing readings never make it past
// FilterSeries, so V is always finite here.
type Sample struct {
	T int64   `json:"t"`
	V float64 `json:"v"`
}

// Series is a named, time-ascending point list for a single metric.
type Series struct {
	Name   string   `json:"name"`
	Points []Sample `json:"points"`
}

// Window is the visible time range of a chart. Cutoff <= Latest always
// holds; both are unix seconds. A Window is derived from observed data
// (see SelectWindow), never supplied by the user directly.
type Window struct {
	Cutoff int64 `json:"cutoff"`
	Latest int64 `json:"latest"`
}

// Span returns the window length in seconds.
func (w Window) Span() int64 {
	return w.Latest - w.Cutoff
}

// Contains reports whether t falls inside the window, inclusive on both
// ends.
func (w Window) Contains(t int64) bool {
	return t >= w.Cutoff && t <= w.Latest
}

// Bounds holds human-friendly ("nice") numeric axis bounds. Invariants:
// Min <= Max, Step > 0, and Max-Min is a near-integer multiple of Step.
type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Point is a planned sample: the original (time, value) pair plus its
// mapped pixel coordinates.
type Point struct {
	T int64   `json:"t"`
	V float64 `json:"v"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a maximal run of consecutive points from one series with no
// internal gap exceeding the gap threshold. The renderer connects a
// segment's points with one unbroken polyline; a single-point segment
// renders as an isolated marker.
type Segment struct {
	Points []Point `json:"points"`
}

// GapMarker marks a reporting outage: the timestamp of the last good
// reading before a gap. X is the mapped pixel position.
type GapMarker struct {
	At int64   `json:"at"`
	X  float64 `json:"x"`
}

// PlannedSeries is one series of the draw plan with its style and broken
// segments.
type PlannedSeries struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Color    string    `json:"color"`
	Width    float64   `json:"width"`
	Segments []Segment `json:"segments"`
}

// XLabel is a time axis label positioned at pixel X.
type XLabel struct {
	T    int64   `json:"t"`
	X    float64 `json:"x"`
	Text string  `json:"text"`
}

// YLabel is a value axis label positioned at pixel Y.
type YLabel struct {
	V    float64 `json:"v"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Layout describes the pixel geometry of the chart surface.
type Layout struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	PadLeft   float64 `json:"pad_left"`
	PadRight  float64 `json:"pad_right"`
	PadTop    float64 `json:"pad_top"`
	PadBottom float64 `json:"pad_bottom"`
}

// PlotWidth returns the width of the plot area inside the paddings.
func (l Layout) PlotWidth() float64 {
	return l.Width - l.PadLeft - l.PadRight
}

// PlotHeight returns the height of the plot area inside the paddings.
func (l Layout) PlotHeight() float64 {
	return l.Height - l.PadTop - l.PadBottom
}

// DrawPlan is the complete renderer-agnostic description of one chart
// redraw. Empty is the first-class "no data in range" terminal state: the
// caller renders an explicit empty-state message instead of a blank
// canvas.
type DrawPlan struct {
	Empty      bool            `json:"empty"`
	Window     Window          `json:"window"`
	Bounds     Bounds          `json:"bounds"`
	Layout     Layout          `json:"layout"`
	Series     []PlannedSeries `json:"series"`
	GapMarkers []GapMarker     `json:"gap_markers"`
	XLabels    []XLabel        `json:"x_labels"`
	YLabels    []YLabel        `json:"y_labels"`
}

// SeriesConfig selects and styles one metric for plotting.
type SeriesConfig struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Config parameterizes the planner. Zero-value fields fall back to the
// defaults below.
type Config struct {
	Layout        Layout
	TickCount     int
	MaxGapSeconds int64
	Series        []SeriesConfig

	// FormatTime converts a unix-second timestamp to an axis label.
	// Defaults to a UTC "Jan 2 15:04" formatter.
	FormatTime func(t int64) string
}

// Defaults matching the converged behavior of the dashboard.
const (
	DefaultTickCount        = 5
	DefaultMaxGapSeconds    = 240
	DefaultHoverMaxDistance = 10.0
)

// DefaultLayout is the chart geometry used by the dashboard page.
var DefaultLayout = Layout{
	Width:     800,
	Height:    320,
	PadLeft:   48,
	PadRight:  16,
	PadTop:    12,
	PadBottom: 28,
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
