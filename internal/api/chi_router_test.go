// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected prometheus exposition output")
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := newTestConfig()
	cfg.Security.CORSOrigins = []string{"https://dash.example.com"}
	ts := setupTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestDashboardRoutesDisabledWithoutPages(t *testing.T) {
	ts := setupTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("root without dashboard pages: status = %d, want 404", rec.Code)
	}
}
