// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/russs95/airbuddy-online/internal/chart"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/metrics"
	"github.com/russs95/airbuddy-online/internal/models"
)

// chartParams carries the validated path and query inputs of the chart
// endpoints.
type chartParams struct {
	DeviceID string `validate:"required,min=3,max=64,deviceid"`
	Range    string `validate:"required,rangekey"`
}

func chartCachePrefix(deviceID string) string {
	return "chart:" + deviceID + ":"
}

// ChartConfig builds the planner configuration from the server config
// and the canonical metric table.
func ChartConfig(tickCount int, maxGapSeconds int64) chart.Config {
	series := make([]chart.SeriesConfig, 0, len(models.MetricNames))
	for _, name := range models.MetricNames {
		info := models.Metrics[name]
		series = append(series, chart.SeriesConfig{
			Name:  name,
			Label: info.Label,
			Color: info.Color,
			Width: info.Width,
		})
	}
	return chart.Config{
		Layout:        chart.DefaultLayout,
		TickCount:     tickCount,
		MaxGapSeconds: maxGapSeconds,
		Series:        series,
	}
}

// Chart serves the complete draw plan for one device and range. Plans
// are cached per (device, range) and invalidated on ingest.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	plan, cached, queryMS, ok := h.chartPlan(w, r)
	if !ok {
		return
	}
	resp := models.APIResponse{
		Status: "success",
		Data:   plan,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryMS,
			Cached:      cached,
		},
	}
	respondJSON(w, http.StatusOK, &resp)
}

// ChartHover resolves the nearest planned sample to the pointer's x
// pixel position for tooltip display. Data is null when nothing is
// within the hover distance.
func (h *Handler) ChartHover(w http.ResponseWriter, r *http.Request) {
	plan, cached, queryMS, ok := h.chartPlan(w, r)
	if !ok {
		return
	}

	pointerX := getFloatParam(r, "x", -1)
	if pointerX < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "x must be a non-negative pixel position", nil)
		return
	}

	hit := chart.Nearest(plan, pointerX, chart.DefaultHoverMaxDistance)
	resp := models.APIResponse{
		Status: "success",
		Data:   hit,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryMS,
			Cached:      cached,
		},
	}
	respondJSON(w, http.StatusOK, &resp)
}

// chartPlan validates the request, then returns the device's draw plan
// from cache or by querying the series window and running the planner.
// On failure it writes the error response and reports ok=false.
func (h *Handler) chartPlan(w http.ResponseWriter, r *http.Request) (plan *chart.DrawPlan, cached bool, queryMS int64, ok bool) {
	params := chartParams{
		DeviceID: chi.URLParam(r, "deviceID"),
		Range:    getStringParam(r, "range", h.config.Chart.DefaultRange),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondValidationError(w, apiErr)
		return nil, false, 0, false
	}

	if _, err := h.db.GetDevice(r.Context(), params.DeviceID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown device", nil)
		} else {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "device lookup failed", err)
		}
		return nil, false, 0, false
	}

	cacheKey := chartCachePrefix(params.DeviceID) + params.Range
	if entry, hit := h.cache.Get(cacheKey); hit {
		metrics.ChartCacheHits.Inc()
		return entry.(*chart.DrawPlan), true, 0, true
	}
	metrics.ChartCacheMisses.Inc()

	span := int64(chart.RangeHours(params.Range, nil)) * 3600
	start := time.Now()
	data, err := h.db.GetSeriesData(r.Context(), params.DeviceID, span)
	queryTime := time.Since(start)
	metrics.RecordDBQuery("get_series_data", queryTime, err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load series data", err)
		return nil, false, 0, false
	}

	planStart := time.Now()
	plan = chart.BuildPlan(chart.Input{
		Timestamps: data.Timestamps,
		Values:     data.Values,
	}, params.Range, ChartConfig(h.config.Chart.TickCount, h.config.Chart.MaxGapSeconds))
	metrics.RecordChartPlan(params.Range, time.Since(planStart))

	h.cache.Set(cacheKey, plan)
	return plan, false, queryTime.Milliseconds(), true
}
