// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/russs95/airbuddy-online/internal/api"
	"github.com/russs95/airbuddy-online/internal/chart"
	"github.com/russs95/airbuddy-online/internal/config"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/models"
	"github.com/russs95/airbuddy-online/internal/validation"
)

// rangeKeys is the order the range switcher shows; keys must exist in
// chart.DefaultRanges.
var rangeKeys = []string{"1h", "6h", "24h", "72h", "7d", "30d"}

// Pages renders the HTML dashboard. It implements api.DashboardPages.
type Pages struct {
	db        *database.DB
	config    *config.Config
	index     *template.Template
	dashboard *template.Template
}

// NewPages parses the built-in templates and returns the page handlers.
func NewPages(db *database.DB, cfg *config.Config) (*Pages, error) {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.UTC().Format("Jan 2 15:04 UTC")
		},
		"formatTimePtr": func(t *time.Time) string {
			if t == nil {
				return "never"
			}
			return t.UTC().Format("Jan 2 15:04 UTC")
		},
		"formatUnix": func(sec int64) string {
			return time.Unix(sec, 0).UTC().Format("Jan 2 15:04 UTC")
		},
		"formatValue": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.1f", *v)
		},
	}

	index, err := template.New("index").Funcs(funcs).Parse(indexHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	dashboard, err := template.New("dashboard").Funcs(funcs).Parse(dashboardHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}

	return &Pages{
		db:        db,
		config:    cfg,
		index:     index,
		dashboard: dashboard,
	}, nil
}

// indexData feeds the device index template.
type indexData struct {
	Devices     []models.DeviceStats
	GeneratedAt time.Time
}

// Index lists all registered devices with their reading counts and last
// seen times, each linking to its chart page.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	stats, err := p.db.GetDeviceStats(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load device stats for index page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	p.render(w, p.index, &indexData{
		Devices:     stats,
		GeneratedAt: time.Now().UTC(),
	})
}

// legendEntry is one metric row under the chart.
type legendEntry struct {
	Name  string
	Label string
	Unit  string
	Color string
	Value *float64
}

// dashboardData feeds the per-device chart page template.
type dashboardData struct {
	Device   *models.Device
	RangeKey string
	Ranges   []string
	Plan     *chart.DrawPlan
	SVG      template.HTML
	Legend   []legendEntry
	Latest   *models.Reading
}

type dashboardParams struct {
	DeviceID string `validate:"required,min=3,max=64,deviceid"`
	Range    string `validate:"required,rangekey"`
}

// Dashboard renders the chart page for one device. The chart is inline
// SVG built from the same draw plan the JSON endpoint serves; the page
// works with scripting disabled, the script only adds hover tooltips
// and live refresh.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	params := dashboardParams{
		DeviceID: chi.URLParam(r, "deviceID"),
		Range:    r.URL.Query().Get("range"),
	}
	if params.Range == "" {
		params.Range = p.config.Chart.DefaultRange
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		http.Error(w, "bad request: "+verr.Error(), http.StatusBadRequest)
		return
	}

	device, err := p.db.GetDevice(r.Context(), params.DeviceID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Error().Err(err).Msg("Failed to load device for dashboard page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	span := int64(chart.RangeHours(params.Range, nil)) * 3600
	data, err := p.db.GetSeriesData(r.Context(), params.DeviceID, span)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load series data for dashboard page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	plan := chart.BuildPlan(chart.Input{
		Timestamps: data.Timestamps,
		Values:     data.Values,
	}, params.Range, api.ChartConfig(p.config.Chart.TickCount, p.config.Chart.MaxGapSeconds))

	latest, err := p.db.GetLatestReading(r.Context(), params.DeviceID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		logging.Warn().Err(err).Msg("Failed to load latest reading for dashboard page")
	}

	p.render(w, p.dashboard, &dashboardData{
		Device:   device,
		RangeKey: params.Range,
		Ranges:   rangeKeys,
		Plan:     plan,
		SVG:      RenderSVG(plan),
		Legend:   buildLegend(latest),
		Latest:   latest,
	})
}

// buildLegend pairs each known metric's style with the device's latest
// value for it, nil when the device never reported that metric.
func buildLegend(latest *models.Reading) []legendEntry {
	legend := make([]legendEntry, 0, len(models.MetricNames))
	for _, name := range models.MetricNames {
		info := models.Metrics[name]
		entry := legendEntry{
			Name:  name,
			Label: info.Label,
			Unit:  info.Unit,
			Color: info.Color,
		}
		if latest != nil {
			entry.Value = latest.Metric(name)
		}
		legend = append(legend, entry)
	}
	return legend
}

// render executes into a buffer first so a template failure produces a
// clean 500 instead of a half-written page.
func (p *Pages) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logging.Error().Err(err).Str("template", tmpl.Name()).Msg("Template execution failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Error().Err(err).Msg("Failed to write dashboard page")
	}
}
