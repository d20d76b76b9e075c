// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/config"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/models"
	ws "github.com/russs95/airbuddy-online/internal/websocket"
)

// testDBSemaphore serializes DuckDB-backed tests within this package.
// Concurrent in-memory instances under `go test -race` are memory
// hungry; one at a time keeps CI stable.
var testDBSemaphore = make(chan struct{}, 1)

type testServer struct {
	handler *Handler
	db      *database.DB
	hub     *ws.Hub
	router  http.Handler
	cfg     *config.Config
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 4400, Host: "127.0.0.1", Timeout: 30 * time.Second, Environment: "development"},
		Security: config.SecurityConfig{
			AuthMode:        "none",
			SessionTimeout:  time.Hour,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Ingest: config.IngestConfig{
			MaxBodyBytes:   64 << 10,
			PerDeviceRate:  1000,
			PerDeviceBurst: 1000,
		},
		Chart: config.ChartConfig{
			DefaultRange:  "24h",
			MaxGapSeconds: 240,
			TickCount:     5,
			CacheTTL:      time.Minute,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

func setupTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.RunWithContext(ctx) }()
	t.Cleanup(cancel)

	var jwtMgr *auth.JWTManager
	var adminAuth *auth.AdminAuthenticator
	if cfg.Security.AuthMode == "jwt" {
		jwtMgr, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			t.Fatalf("jwt manager: %v", err)
		}
		adminAuth, err = auth.NewAdminAuthenticator(&cfg.Security)
		if err != nil {
			t.Fatalf("admin authenticator: %v", err)
		}
	}

	handler := NewHandler(db, cfg, hub, jwtMgr, adminAuth, auth.NewDeviceAuthenticator(db))
	router := NewRouter(handler, NewChiMiddleware(&cfg.Security), nil).Setup()

	return &testServer{
		handler: handler,
		db:      db,
		hub:     hub,
		router:  router,
		cfg:     cfg,
	}
}

// seedDevice registers a device directly and returns its plaintext key.
func seedDevice(t *testing.T, ts *testServer, id string) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateAPIKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	err = ts.db.CreateDevice(context.Background(), &models.Device{
		ID:         id,
		Name:       "Test sensor " + id,
		APIKeyHash: hash,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed device %s: %v", id, err)
	}
	return plaintext
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response envelope (%d %s): %v", rec.Code, rec.Body.String(), err)
		}
	}
	return rec, env
}

func deviceHeaders(id, key string) map[string]string {
	return map[string]string{
		auth.HeaderDeviceID: id,
		auth.HeaderAPIKey:   key,
	}
}

func ingestBody(recordedAt int64, values map[string]float64) map[string]interface{} {
	return map[string]interface{}{
		"recorded_at": recordedAt,
		"values":      values,
	}
}
