// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package chart

import (
	"math"
	"testing"
)

func TestNiceBoundsDegenerateNonzero(t *testing.T) {
	b := NiceBounds(5, 5, 5)

	if b.Min >= 5 || b.Max <= 5 {
		t.Errorf("expected min < 5 < max, got min=%v max=%v", b.Min, b.Max)
	}
	if b.Step <= 0 {
		t.Errorf("expected positive step, got %v", b.Step)
	}
}

func TestNiceBoundsDegenerateZero(t *testing.T) {
	b := NiceBounds(0, 0, 5)

	if b.Min >= 0 || b.Max <= 0 {
		t.Errorf("expected symmetric pad around 0, got min=%v max=%v", b.Min, b.Max)
	}
	if b.Min != -b.Max {
		t.Errorf("expected symmetric bounds, got min=%v max=%v", b.Min, b.Max)
	}
	if b.Step <= 0 {
		t.Errorf("expected positive step, got %v", b.Step)
	}
}

func TestNiceBoundsNonFiniteFallback(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"nan min", math.NaN(), 10},
		{"nan max", 0, math.NaN()},
		{"pos inf", 0, math.Inf(1)},
		{"neg inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NiceBounds(tt.min, tt.max, 5)
			want := Bounds{Min: 0, Max: 1, Step: 1}
			if b != want {
				t.Errorf("expected fallback %+v, got %+v", want, b)
			}
		})
	}
}

func TestNiceBoundsOutwardRounding(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"small positive", 0.3, 9.7},
		{"negative range", -42.5, -1.1},
		{"crossing zero", -3.3, 7.8},
		{"tight range", 21.9, 22.4},
		{"large values", 380, 11200},
		{"fractional", 0.0213, 0.0897},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NiceBounds(tt.min, tt.max, 5)
			if b.Min > tt.min {
				t.Errorf("min %v not <= input min %v", b.Min, tt.min)
			}
			if b.Max < tt.max {
				t.Errorf("max %v not >= input max %v", b.Max, tt.max)
			}
			if b.Step <= 0 {
				t.Errorf("expected positive step, got %v", b.Step)
			}
			// Span must be a near-integer multiple of step.
			ratio := (b.Max - b.Min) / b.Step
			if math.Abs(ratio-math.Round(ratio)) > 1e-6 {
				t.Errorf("span %v not a multiple of step %v", b.Max-b.Min, b.Step)
			}
		})
	}
}

func TestNiceBoundsStepFamily(t *testing.T) {
	// Step must come from {1, 2, 5, 10} x 10^k.
	tests := []struct {
		min, max float64
		wantStep float64
	}{
		{0, 10, 5},   // rawStep 2.5 -> mantissa 2.5 -> 5
		{0, 4, 1},    // rawStep 1 -> 1
		{0, 100, 50}, // rawStep 25 -> mantissa 2.5 -> 50
	}

	for _, tt := range tests {
		b := NiceBounds(tt.min, tt.max, 5)
		if math.Abs(b.Step-tt.wantStep) > 1e-9 {
			t.Errorf("NiceBounds(%v,%v,5): expected step %v, got %v", tt.min, tt.max, tt.wantStep, b.Step)
		}
	}
}

func TestNiceBoundsSwappedInput(t *testing.T) {
	b := NiceBounds(10, 2, 5)
	if b.Min > 2 || b.Max < 10 {
		t.Errorf("swapped input not normalized: %+v", b)
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		v    float64
		step float64
		want string
	}{
		{22, 2, "22"},
		{0.5, 0.5, "0.5"},
		{-1, 1, "-1"},
		{0.25, 0.05, "0.25"},
		{100, 25, "100"},
	}

	for _, tt := range tests {
		if got := FormatTick(tt.v, tt.step); got != tt.want {
			t.Errorf("FormatTick(%v, %v) = %q, want %q", tt.v, tt.step, got, tt.want)
		}
	}
}
