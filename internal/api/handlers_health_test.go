// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
)

func TestHealthEndpoints(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		rec, env := doRequest(t, ts.router, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
		if env.Status != "success" {
			t.Errorf("%s envelope status = %q", path, env.Status)
		}
	}
}

func TestHealthReportsUptime(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())

	_, env := doRequest(t, ts.router, http.MethodGet, "/api/v1/health", nil, nil)
	var body struct {
		Status        string `json:"status"`
		Database      string `json:"database"`
		UptimeSeconds int64  `json:"uptime_seconds"`
	}
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Database != "ok" {
		t.Errorf("health = %+v", body)
	}
	if body.UptimeSeconds < 0 {
		t.Errorf("uptime = %d", body.UptimeSeconds)
	}
}

func TestHealthReadyFailsOnClosedDB(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())
	if err := ts.db.Close(); err != nil {
		t.Fatal(err)
	}

	rec, env := doRequest(t, ts.router, http.MethodGet, "/api/v1/health/ready", nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v", env.Error)
	}
}
