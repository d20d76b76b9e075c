// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/russs95/airbuddy-online/internal/models"
)

// Health reports overall service status plus uptime and websocket
// client count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	resp := models.NewSuccessResponse(map[string]interface{}{
		"status":            status,
		"database":          dbStatus,
		"uptime_seconds":    int64(time.Since(h.startTime).Seconds()),
		"websocket_clients": h.hub.GetClientCount(),
	})
	respondJSON(w, code, &resp)
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	resp := models.NewSuccessResponse(map[string]bool{"alive": true})
	respondJSON(w, http.StatusOK, &resp)
}

// HealthReady is the readiness probe: the database must answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "database unavailable", err)
		return
	}
	resp := models.NewSuccessResponse(map[string]bool{"ready": true})
	respondJSON(w, http.StatusOK, &resp)
}
