// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package database

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/russs95/airbuddy-online/internal/models"
)

func TestInsertReadingIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-ing")

	req := &models.IngestRequest{
		RecordedAt: 5000,
		Values:     map[string]float64{"temp_c": 21.5, "rh": 40},
		Confidence: map[string]float64{"temp_c": 0.98},
		Flags:      map[string]string{"rh": "heater_on"},
	}

	dup, err := db.InsertReading(ctx, "ab-ing", req)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if dup {
		t.Error("first insert reported as duplicate")
	}

	// Same (device, recorded_at) with different values: row must be kept
	// as-is and the insert reported as a duplicate.
	replay := &models.IngestRequest{RecordedAt: 5000, Values: map[string]float64{"temp_c": 99}}
	dup, err = db.InsertReading(ctx, "ab-ing", replay)
	if err != nil {
		t.Fatalf("replay insert: %v", err)
	}
	if !dup {
		t.Error("replay not reported as duplicate")
	}

	latest, err := db.GetLatestReading(ctx, "ab-ing")
	if err != nil {
		t.Fatal(err)
	}
	if latest.TempC == nil || *latest.TempC != 21.5 {
		t.Errorf("stored temp_c = %v, want original 21.5", latest.TempC)
	}
	if latest.Confidence["temp_c"] != 0.98 {
		t.Errorf("stored confidence = %v", latest.Confidence)
	}
	if latest.Flags["rh"] != "heater_on" {
		t.Errorf("stored flags = %v", latest.Flags)
	}
}

func TestInsertReadingDropsUnknownMetrics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-unk")

	lat, lon := 14.55, 121.05
	req := &models.IngestRequest{
		RecordedAt: 7000,
		Values:     map[string]float64{"temp_c": 22, "radon_bqm3": 15},
		Lat:        &lat,
		Lon:        &lon,
	}
	if _, err := db.InsertReading(ctx, "ab-unk", req); err != nil {
		t.Fatal(err)
	}

	latest, err := db.GetLatestReading(ctx, "ab-unk")
	if err != nil {
		t.Fatal(err)
	}
	if latest.TempC == nil || *latest.TempC != 22 {
		t.Errorf("temp_c = %v, want 22", latest.TempC)
	}
	if latest.RH != nil {
		t.Error("rh should be NULL")
	}
	if latest.Lat == nil || *latest.Lat != 14.55 || latest.Lon == nil || *latest.Lon != 121.05 {
		t.Errorf("position = %v/%v, want 14.55/121.05", latest.Lat, latest.Lon)
	}
	if latest.Confidence != nil || latest.Flags != nil {
		t.Errorf("annotations should be absent, got %v / %v", latest.Confidence, latest.Flags)
	}
}

func TestInsertReadingSameTimestampDifferentDevices(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-x")
	seedDevice(t, db, "ab-y")

	for _, id := range []string{"ab-x", "ab-y"} {
		dup, err := db.InsertReading(ctx, id, &models.IngestRequest{RecordedAt: 42, Values: map[string]float64{"temp_c": 1}})
		if err != nil {
			t.Fatalf("insert for %s: %v", id, err)
		}
		if dup {
			t.Errorf("insert for %s wrongly reported as duplicate", id)
		}
	}
}

func TestGetSeriesDataParallelArrays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-series")

	// Three samples; the middle one has no humidity.
	samples := []*models.IngestRequest{
		{RecordedAt: 100, Values: map[string]float64{"temp_c": 20, "rh": 35}},
		{RecordedAt: 200, Values: map[string]float64{"temp_c": 20.5}},
		{RecordedAt: 300, Values: map[string]float64{"temp_c": 21, "rh": 36, "pm25_ugm3": 7.2}},
	}
	for _, s := range samples {
		if _, err := db.InsertReading(ctx, "ab-series", s); err != nil {
			t.Fatal(err)
		}
	}

	data, err := db.GetSeriesData(ctx, "ab-series", 86400)
	if err != nil {
		t.Fatalf("GetSeriesData: %v", err)
	}
	if len(data.Timestamps) != 3 {
		t.Fatalf("got %d timestamps, want 3", len(data.Timestamps))
	}
	for _, name := range models.MetricNames {
		if len(data.Values[name]) != 3 {
			t.Fatalf("series %s has %d values, want 3", name, len(data.Values[name]))
		}
	}
	if data.Timestamps[0] != 100 || data.Timestamps[2] != 300 {
		t.Errorf("timestamps = %v, want ascending [100 200 300]", data.Timestamps)
	}
	if !math.IsNaN(data.Values["rh"][1]) {
		t.Errorf("missing humidity should be NaN, got %v", data.Values["rh"][1])
	}
	if data.Values["temp_c"][1] != 20.5 {
		t.Errorf("temp_c[1] = %v, want 20.5", data.Values["temp_c"][1])
	}
	if !math.IsNaN(data.Values["eco2_ppm"][0]) {
		t.Error("never-reported metric should be NaN throughout")
	}
}

func TestGetSeriesDataAnchorsToLatestSample(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-stale")

	// Old samples far in the past; the span is measured from the latest
	// stored sample, not from time.Now().
	for _, ts := range []int64{1000, 2000, 10000} {
		if _, err := db.InsertReading(ctx, "ab-stale", &models.IngestRequest{RecordedAt: ts, Values: map[string]float64{"temp_c": 20}}); err != nil {
			t.Fatal(err)
		}
	}

	data, err := db.GetSeriesData(ctx, "ab-stale", 3600)
	if err != nil {
		t.Fatal(err)
	}
	// Cutoff is 10000-3600=6400, so only the sample at 10000 survives.
	if len(data.Timestamps) != 1 || data.Timestamps[0] != 10000 {
		t.Errorf("timestamps = %v, want [10000]", data.Timestamps)
	}

	data, err = db.GetSeriesData(ctx, "ab-stale", 86400)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Timestamps) != 3 {
		t.Errorf("wide span got %d samples, want 3", len(data.Timestamps))
	}
}

func TestGetSeriesDataEmptyDevice(t *testing.T) {
	db := setupTestDB(t)
	data, err := db.GetSeriesData(context.Background(), "ab-none", 3600)
	if err != nil {
		t.Fatalf("GetSeriesData: %v", err)
	}
	if len(data.Timestamps) != 0 {
		t.Errorf("expected no timestamps, got %v", data.Timestamps)
	}
	for _, name := range models.MetricNames {
		if vals, ok := data.Values[name]; !ok || len(vals) != 0 {
			t.Errorf("series %s should be present and empty", name)
		}
	}
}

func TestGetLatestReadingNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.GetLatestReading(context.Background(), "ab-none")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-s1")
	seedDevice(t, db, "ab-s2")
	if err := db.SetDeviceRevoked(ctx, "ab-s2", true); err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertReading(ctx, "ab-s1", &models.IngestRequest{RecordedAt: 1000, Values: map[string]float64{"temp_c": 20}}); err != nil {
		t.Fatal(err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalDevices != 2 {
		t.Errorf("total devices = %d, want 2", stats.TotalDevices)
	}
	if stats.RevokedDevices != 1 || stats.ActiveDevices != 1 {
		t.Errorf("revoked/active = %d/%d, want 1/1", stats.RevokedDevices, stats.ActiveDevices)
	}
	if stats.TotalReadings != 1 {
		t.Errorf("total readings = %d, want 1", stats.TotalReadings)
	}
	if stats.LatestReading == nil || stats.LatestReading.Unix() != 1000 {
		t.Errorf("latest reading = %v, want unix 1000", stats.LatestReading)
	}
}

func TestGetDeviceStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-ds")
	if _, err := db.InsertReading(ctx, "ab-ds", &models.IngestRequest{RecordedAt: 500, Values: map[string]float64{"temp_c": 19}}); err != nil {
		t.Fatal(err)
	}

	all, err := db.GetDeviceStats(ctx)
	if err != nil {
		t.Fatalf("GetDeviceStats: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d device stats, want 1", len(all))
	}
	if all[0].ReadingCount != 1 {
		t.Errorf("reading count = %d, want 1", all[0].ReadingCount)
	}
	if all[0].LatestReading == nil || all[0].LatestReading.RecordedAt != 500 {
		t.Errorf("latest reading = %+v, want recorded_at 500", all[0].LatestReading)
	}
}

func TestPruneReadings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-prune")

	for _, ts := range []int64{100, 200, 300, 400} {
		if _, err := db.InsertReading(ctx, "ab-prune", &models.IngestRequest{RecordedAt: ts, Values: map[string]float64{"temp_c": 20}}); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := db.PruneReadings(ctx, 300)
	if err != nil {
		t.Fatalf("PruneReadings: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed %d rows, want 2", removed)
	}

	data, err := db.GetSeriesData(ctx, "ab-prune", 86400)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Timestamps) != 2 || data.Timestamps[0] != 300 {
		t.Errorf("surviving timestamps = %v, want [300 400]", data.Timestamps)
	}
}
