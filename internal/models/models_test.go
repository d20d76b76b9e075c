// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package models

import (
	"testing"
)

func TestMetricNamesMatchMetricsMap(t *testing.T) {
	if len(MetricNames) != len(Metrics) {
		t.Fatalf("MetricNames has %d entries, Metrics has %d", len(MetricNames), len(Metrics))
	}
	for _, name := range MetricNames {
		if !IsKnownMetric(name) {
			t.Errorf("metric %q listed in MetricNames but missing from Metrics", name)
		}
	}
}

func TestIsKnownMetric(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"temp_c", true},
		{"rh", true},
		{"eco2_ppm", true},
		{"tvoc_ppb", true},
		{"pm25_ugm3", true},
		{"co2_ppm", false},
		{"", false},
		{"TEMP_C", false},
	}
	for _, tt := range tests {
		if got := IsKnownMetric(tt.name); got != tt.want {
			t.Errorf("IsKnownMetric(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIngestRequestKnownValues(t *testing.T) {
	req := IngestRequest{
		RecordedAt: 1,
		Values: map[string]float64{
			"temp_c":     21.5,
			"pm25_ugm3":  7.2,
			"radon_bqm3": 12,
			"noise_dba":  48,
		},
	}
	known, unknown := req.KnownValues()
	if len(known) != 2 {
		t.Fatalf("known = %v, want temp_c and pm25_ugm3", known)
	}
	if known["temp_c"] != 21.5 || known["pm25_ugm3"] != 7.2 {
		t.Errorf("known values = %v", known)
	}
	if len(unknown) != 2 {
		t.Errorf("unknown = %v, want 2 names", unknown)
	}

	known, unknown = (&IngestRequest{RecordedAt: 1}).KnownValues()
	if known == nil || len(known) != 0 {
		t.Errorf("empty request known = %v, want empty non-nil map", known)
	}
	if unknown != nil {
		t.Errorf("empty request unknown = %v", unknown)
	}
}

func TestIngestRequestOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]float64
		want   int
	}{
		{"all sane", map[string]float64{"temp_c": 21, "rh": 45}, 0},
		{"impossible temperature", map[string]float64{"temp_c": 140}, 1},
		{"negative humidity", map[string]float64{"rh": -3, "temp_c": 20}, 1},
		{"two bad metrics", map[string]float64{"rh": 101, "pm25_ugm3": -1}, 2},
		{"unknown names not checked", map[string]float64{"radon_bqm3": 1e12}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := IngestRequest{RecordedAt: 1, Values: tt.values}
			if got := req.OutOfRange(); len(got) != tt.want {
				t.Errorf("OutOfRange() = %v, want %d names", got, tt.want)
			}
		})
	}
}

func TestReadingMetric(t *testing.T) {
	v := 21.5
	r := Reading{DeviceID: "ab-1", RecordedAt: 1, TempC: &v}
	if got := r.Metric("temp_c"); got == nil || *got != 21.5 {
		t.Errorf("Metric(temp_c) = %v", got)
	}
	if r.Metric("rh") != nil {
		t.Error("Metric(rh) should be nil for unset metric")
	}
	if r.Metric("bogus") != nil {
		t.Error("Metric(bogus) should be nil")
	}
}

func TestResponseConstructors(t *testing.T) {
	ok := NewSuccessResponse(map[string]int{"accepted": 1})
	if ok.Status != "success" {
		t.Errorf("success status = %q", ok.Status)
	}
	if ok.Error != nil {
		t.Error("success response should not carry an error")
	}
	if ok.Metadata.Timestamp.IsZero() {
		t.Error("success response missing timestamp")
	}

	bad := NewErrorResponse("VALIDATION_ERROR", "recorded_at is required")
	if bad.Status != "error" {
		t.Errorf("error status = %q", bad.Status)
	}
	if bad.Error == nil || bad.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error response code = %+v", bad.Error)
	}
}
