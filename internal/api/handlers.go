// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/cache"
	"github.com/russs95/airbuddy-online/internal/config"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/logging"
	ws "github.com/russs95/airbuddy-online/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, websocket origin check
//   - handlers_helpers.go: shared response and parameter helpers
//   - handlers_health.go: health and readiness endpoints
//   - handlers_auth.go: admin login/logout
//   - handlers_ingest.go: device telemetry ingest
//   - handlers_chart.go: chart plan and hover endpoints
//   - handlers_devices.go: device management
//   - handlers_stats.go: network summary
//   - handlers_ws.go: websocket upgrade
type Handler struct {
	db         *database.DB
	config     *config.Config
	cache      *cache.Cache
	hub        *ws.Hub
	jwtManager *auth.JWTManager
	adminAuth  *auth.AdminAuthenticator
	deviceAuth *auth.DeviceAuthenticator
	limiters   *deviceLimiters
	startTime  time.Time
}

// NewHandler creates a new API handler. The chart cache TTL and the
// per-device ingest budget come from cfg; the cache is owned by the
// handler and invalidated per device on ingest.
func NewHandler(db *database.DB, cfg *config.Config, hub *ws.Hub, jwtManager *auth.JWTManager, adminAuth *auth.AdminAuthenticator, deviceAuth *auth.DeviceAuthenticator) *Handler {
	return &Handler{
		db:         db,
		config:     cfg,
		cache:      cache.New(cfg.Chart.CacheTTL),
		hub:        hub,
		jwtManager: jwtManager,
		adminAuth:  adminAuth,
		deviceAuth: deviceAuth,
		limiters:   newDeviceLimiters(cfg.Ingest.PerDeviceRate, cfg.Ingest.PerDeviceBurst),
		startTime:  time.Now(),
	}
}

// Cache exposes the chart cache, used by tests and the cache stats
// endpoint.
func (h *Handler) Cache() *cache.Cache {
	return h.cache
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins. Browser
// websockets always send Origin; an empty header means a non-browser
// client and would bypass CORS entirely, so it is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
