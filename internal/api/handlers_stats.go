// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"time"

	"github.com/russs95/airbuddy-online/internal/metrics"
	"github.com/russs95/airbuddy-online/internal/models"
)

// Stats returns the network-wide summary.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.db.GetStats(r.Context())
	metrics.RecordDBQuery("get_stats", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to query stats", err)
		return
	}

	resp := models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	}
	respondJSON(w, http.StatusOK, &resp)
}
