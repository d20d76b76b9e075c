// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/metrics"
	"github.com/russs95/airbuddy-online/internal/models"
)

// Telemetry ingests one reading from an authenticated device.
// 202 on insert, 200 when the (device, recorded_at) pair was already
// stored, so firmware can blindly replay its backlog after an outage.
func (h *Handler) Telemetry(w http.ResponseWriter, r *http.Request) {
	device := auth.DeviceFromContext(r.Context())
	if device == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "missing device context", nil)
		return
	}

	if !h.limiters.allow(device.ID) {
		metrics.IngestRejected.WithLabelValues("throttled").Inc()
		metrics.APIRateLimitHits.WithLabelValues("telemetry").Inc()
		respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "device reading budget exceeded", nil)
		return
	}

	var req models.IngestRequest
	if err := decodeBody(w, r, h.config.Ingest.MaxBodyBytes, &req); err != nil {
		metrics.IngestRejected.WithLabelValues("malformed").Inc()
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "malformed request body", nil)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.IngestRejected.WithLabelValues("validation").Inc()
		respondValidationError(w, apiErr)
		return
	}

	known, unknown := req.KnownValues()
	if len(unknown) > 0 {
		logging.Warn().
			Str("device_id", device.ID).
			Str("metrics", sanitizeLogValue(strings.Join(unknown, ","))).
			Msg("Ignoring unknown metrics in reading")
	}
	if len(known) == 0 {
		metrics.IngestRejected.WithLabelValues("no_metrics").Inc()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "no known metrics in values", nil)
		return
	}
	if bad := req.OutOfRange(); len(bad) > 0 {
		metrics.IngestRejected.WithLabelValues("out_of_range").Inc()
		respondError(w, http.StatusBadRequest, "OUT_OF_RANGE",
			"metric values outside plausible range: "+strings.Join(bad, ", "), nil)
		return
	}

	start := time.Now()
	duplicate, err := h.db.InsertReading(r.Context(), device.ID, &req)
	metrics.RecordDBQuery("insert_reading", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to store reading", err)
		return
	}
	metrics.RecordIngest(duplicate)

	if err := h.db.TouchDeviceLastSeen(r.Context(), device.ID, time.Now().UTC()); err != nil {
		logging.Warn().Err(err).Str("device_id", device.ID).Msg("Failed to update last_seen_at")
	}

	status := http.StatusAccepted
	if duplicate {
		status = http.StatusOK
	} else {
		h.cache.DeletePrefix(chartCachePrefix(device.ID))
		h.hub.BroadcastReading(models.ReadingFromIngest(device.ID, &req))
	}

	resp := models.NewSuccessResponse(models.IngestResult{
		DeviceID:   device.ID,
		RecordedAt: req.RecordedAt,
		Duplicate:  duplicate,
	})
	respondJSON(w, status, &resp)
}
