// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package models

import (
	"time"
)

// Metric column names in canonical display order. This order drives both
// the readings table columns and the default series order on charts.
const (
	MetricTempC    = "temp_c"
	MetricRH       = "rh"
	MetricECO2PPM  = "eco2_ppm"
	MetricTVOCPPB  = "tvoc_ppb"
	MetricPM25UGM3 = "pm25_ugm3"
)

// MetricNames lists all known metric columns in canonical order.
var MetricNames = []string{
	MetricTempC,
	MetricRH,
	MetricECO2PPM,
	MetricTVOCPPB,
	MetricPM25UGM3,
}

// MetricInfo describes how a metric is labelled, drawn, and bounded.
// Min/Max are plausibility limits for ingest, not alarm thresholds.
type MetricInfo struct {
	Label string
	Unit  string
	Color string
	Width float64
	Min   float64
	Max   float64
}

// Metrics maps each metric name to its display attributes.
var Metrics = map[string]MetricInfo{
	MetricTempC:    {Label: "Temperature", Unit: "°C", Color: "#e4572e", Width: 2, Min: -90, Max: 90},
	MetricRH:       {Label: "Humidity", Unit: "%", Color: "#17bebb", Width: 2, Min: 0, Max: 100},
	MetricECO2PPM:  {Label: "eCO₂", Unit: "ppm", Color: "#76b041", Width: 2, Min: 0, Max: 100000},
	MetricTVOCPPB:  {Label: "TVOC", Unit: "ppb", Color: "#ffc914", Width: 2, Min: 0, Max: 1000000},
	MetricPM25UGM3: {Label: "PM2.5", Unit: "µg/m³", Color: "#8661c1", Width: 2, Min: 0, Max: 10000},
}

// IsKnownMetric reports whether name is one of the supported metric columns.
func IsKnownMetric(name string) bool {
	_, ok := Metrics[name]
	return ok
}

// IngestRequest is the wire format accepted by POST /api/v1/telemetry.
// Values is metric name to reading; names outside MetricNames are
// ignored (noisy hardware ships firmware-specific extras). Confidence
// and Flags are optional per-metric annotations stored verbatim.
//
// RecordedAt is the sensor's own clock in unix seconds. It is the
// idempotency key together with the device ID: re-posting the same
// (device, recorded_at) pair is a no-op.
type IngestRequest struct {
	RecordedAt int64              `json:"recorded_at" validate:"required,unixsec"`
	Values     map[string]float64 `json:"values" validate:"required,min=1"`
	Confidence map[string]float64 `json:"confidence,omitempty" validate:"omitempty,dive,gte=0,lte=1"`
	Flags      map[string]string  `json:"flags,omitempty"`
	Lat        *float64           `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lon        *float64           `json:"lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
	AltM       *float64           `json:"alt_m,omitempty" validate:"omitempty,gte=-500,lte=12000"`
}

// KnownValues splits Values into the supported metrics and the names
// that were dropped. The known map is never nil.
func (r *IngestRequest) KnownValues() (known map[string]float64, unknown []string) {
	known = make(map[string]float64, len(r.Values))
	for name, v := range r.Values {
		if IsKnownMetric(name) {
			known[name] = v
		} else {
			unknown = append(unknown, name)
		}
	}
	return known, unknown
}

// OutOfRange returns the names of known metrics whose value falls
// outside the plausibility bounds in Metrics.
func (r *IngestRequest) OutOfRange() []string {
	var bad []string
	for _, name := range MetricNames {
		v, ok := r.Values[name]
		if !ok {
			continue
		}
		info := Metrics[name]
		if v < info.Min || v > info.Max {
			bad = append(bad, name)
		}
	}
	return bad
}

// Reading is one stored telemetry row. Metric columns are pointers so
// an absent metric is distinguishable from a zero reading.
type Reading struct {
	DeviceID   string             `json:"device_id"`
	RecordedAt int64              `json:"recorded_at"`
	TempC      *float64           `json:"temp_c,omitempty"`
	RH         *float64           `json:"rh,omitempty"`
	ECO2PPM    *float64           `json:"eco2_ppm,omitempty"`
	TVOCPPB    *float64           `json:"tvoc_ppb,omitempty"`
	PM25UGM3   *float64           `json:"pm25_ugm3,omitempty"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
	Flags      map[string]string  `json:"flags,omitempty"`
	Lat        *float64           `json:"lat,omitempty"`
	Lon        *float64           `json:"lon,omitempty"`
	AltM       *float64           `json:"alt_m,omitempty"`
	ReceivedAt time.Time          `json:"received_at"`
}

// ReadingFromIngest builds the stored-row view of an accepted ingest
// request without a database round trip, for websocket broadcast.
func ReadingFromIngest(deviceID string, req *IngestRequest) *Reading {
	known, _ := req.KnownValues()
	r := &Reading{
		DeviceID:   deviceID,
		RecordedAt: req.RecordedAt,
		Lat:        req.Lat,
		Lon:        req.Lon,
		AltM:       req.AltM,
		ReceivedAt: time.Now().UTC(),
	}
	if len(req.Confidence) > 0 {
		r.Confidence = req.Confidence
	}
	if len(req.Flags) > 0 {
		r.Flags = req.Flags
	}
	for name, v := range known {
		v := v
		switch name {
		case MetricTempC:
			r.TempC = &v
		case MetricRH:
			r.RH = &v
		case MetricECO2PPM:
			r.ECO2PPM = &v
		case MetricTVOCPPB:
			r.TVOCPPB = &v
		case MetricPM25UGM3:
			r.PM25UGM3 = &v
		}
	}
	return r
}

// Metric returns the stored value for a known metric name, or nil.
func (r *Reading) Metric(name string) *float64 {
	switch name {
	case MetricTempC:
		return r.TempC
	case MetricRH:
		return r.RH
	case MetricECO2PPM:
		return r.ECO2PPM
	case MetricTVOCPPB:
		return r.TVOCPPB
	case MetricPM25UGM3:
		return r.PM25UGM3
	}
	return nil
}

// SeriesData is the parallel-array form of a device's readings over a
// time range, ordered by recorded_at ascending. Values holds one slice
// per metric, aligned index-for-index with Timestamps; NULL columns
// surface as NaN so the chart pipeline can drop them per-series.
type SeriesData struct {
	DeviceID   string               `json:"device_id"`
	Timestamps []float64            `json:"timestamps"`
	Values     map[string][]float64 `json:"values"`
}

// IngestResult reports what happened to a posted reading.
type IngestResult struct {
	DeviceID   string `json:"device_id"`
	RecordedAt int64  `json:"recorded_at"`
	Duplicate  bool   `json:"duplicate"`
}
