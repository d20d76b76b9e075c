// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package web

import (
	"strings"
	"testing"

	"github.com/russs95/airbuddy-online/internal/chart"
)

func testPlan(t *testing.T, timestamps []float64, values map[string][]float64) *chart.DrawPlan {
	t.Helper()
	return chart.BuildPlan(chart.Input{
		Timestamps: timestamps,
		Values:     values,
	}, "24h", chart.Config{
		Series: []chart.SeriesConfig{
			{Name: "temp_c", Label: "Temperature", Color: "#e4572e", Width: 2},
		},
	})
}

func TestRenderSVGDrawsPolyline(t *testing.T) {
	base := float64(1_700_000_000)
	plan := testPlan(t,
		[]float64{base, base + 60, base + 120},
		map[string][]float64{"temp_c": {21.0, 21.5, 22.0}},
	)

	svg := string(RenderSVG(plan))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("output is not an svg element")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("continuous samples should render a polyline")
	}
	if !strings.Contains(svg, `stroke="#e4572e"`) {
		t.Error("series color missing")
	}
	if strings.Contains(svg, "no data in range") {
		t.Error("populated plan rendered the empty state")
	}
}

func TestRenderSVGEmptyPlan(t *testing.T) {
	plan := testPlan(t, nil, map[string][]float64{"temp_c": {}})

	svg := string(RenderSVG(plan))

	if !strings.Contains(svg, "no data in range") {
		t.Error("empty plan should render the empty-state message")
	}
	if strings.Contains(svg, "<polyline") {
		t.Error("empty plan must not draw series")
	}
}

func TestRenderSVGGapMarkers(t *testing.T) {
	base := float64(1_700_000_000)
	// 1000s silence exceeds the default 240s gap threshold.
	plan := testPlan(t,
		[]float64{base, base + 60, base + 1060, base + 1120},
		map[string][]float64{"temp_c": {21, 21, 22, 22}},
	)

	if len(plan.GapMarkers) == 0 {
		t.Fatal("plan should carry a gap marker")
	}

	svg := string(RenderSVG(plan))
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("gap markers should render dashed")
	}
	if c := strings.Count(svg, "<polyline"); c != 2 {
		t.Errorf("got %d polylines, want 2 segments around the gap", c)
	}
}

func TestRenderSVGIsolatedPoint(t *testing.T) {
	base := float64(1_700_000_000)
	// The middle sample sits alone between two long gaps.
	plan := testPlan(t,
		[]float64{base, base + 1000, base + 2000, base + 2060},
		map[string][]float64{"temp_c": {21, 25, 22, 22}},
	)

	svg := string(RenderSVG(plan))
	if !strings.Contains(svg, "<circle") {
		t.Error("single-point segment should render as a marker")
	}
}

func TestRenderSVGAxisLabels(t *testing.T) {
	base := float64(1_700_000_000)
	plan := testPlan(t,
		[]float64{base, base + 600},
		map[string][]float64{"temp_c": {20, 30}},
	)

	svg := string(RenderSVG(plan))
	for _, yl := range plan.YLabels {
		if !strings.Contains(svg, ">"+yl.Text+"<") {
			t.Errorf("missing y axis label %q", yl.Text)
		}
	}
	if len(plan.XLabels) == 0 {
		t.Fatal("plan should carry x labels")
	}
	if !strings.Contains(svg, ">"+plan.XLabels[0].Text+"<") {
		t.Errorf("missing x axis label %q", plan.XLabels[0].Text)
	}
}
