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
	"github.com/google/uuid"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/models"
)

// DevicesList returns every registered device with its reading summary.
func (h *Handler) DevicesList(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetDeviceStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list devices", err)
		return
	}
	resp := models.NewSuccessResponse(stats)
	respondJSON(w, http.StatusOK, &resp)
}

// DeviceGet returns one device record.
func (h *Handler) DeviceGet(w http.ResponseWriter, r *http.Request) {
	device, ok := h.loadDevice(w, r)
	if !ok {
		return
	}
	resp := models.NewSuccessResponse(device)
	respondJSON(w, http.StatusOK, &resp)
}

// DeviceCreate registers a sensor and returns its API key. The
// plaintext key is shown exactly once; only the SHA-256 digest is
// stored.
func (h *Handler) DeviceCreate(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceCreateRequest
	if err := decodeBody(w, r, 16<<10, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "malformed request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	plaintext, hash, err := auth.GenerateAPIKey()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to generate API key", err)
		return
	}

	device := &models.Device{
		ID:         id,
		Name:       req.Name,
		Location:   req.Location,
		APIKeyHash: hash,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.db.CreateDevice(r.Context(), device); err != nil {
		if errors.Is(err, database.ErrDeviceExists) {
			respondError(w, http.StatusConflict, "DEVICE_EXISTS", "device ID already registered", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create device", err)
		return
	}

	logging.Info().Str("device_id", sanitizeLogValue(id)).Msg("Device registered")
	h.hub.BroadcastDeviceState(id, "created")

	resp := models.NewSuccessResponse(models.DeviceCreateResponse{
		Device: *device,
		APIKey: plaintext,
	})
	respondJSON(w, http.StatusCreated, &resp)
}

// DeviceUpdate changes a device's name or location.
func (h *Handler) DeviceUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.DeviceUpdateRequest
	if err := decodeBody(w, r, 16<<10, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "malformed request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.UpdateDevice(r.Context(), id, &req); err != nil {
		h.respondDeviceError(w, err, "failed to update device")
		return
	}
	h.hub.BroadcastDeviceState(id, "updated")

	device, err := h.db.GetDevice(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to reload device", err)
		return
	}
	resp := models.NewSuccessResponse(device)
	respondJSON(w, http.StatusOK, &resp)
}

// DeviceRevoke invalidates a device's key. Readings already stored are
// kept; further ingest from the device gets 403.
func (h *Handler) DeviceRevoke(w http.ResponseWriter, r *http.Request) {
	h.setRevoked(w, r, true, "revoked")
}

// DeviceRestore re-enables a revoked device.
func (h *Handler) DeviceRestore(w http.ResponseWriter, r *http.Request) {
	h.setRevoked(w, r, false, "restored")
}

func (h *Handler) setRevoked(w http.ResponseWriter, r *http.Request, revoked bool, event string) {
	id := chi.URLParam(r, "id")
	if err := h.db.SetDeviceRevoked(r.Context(), id, revoked); err != nil {
		h.respondDeviceError(w, err, "failed to change device state")
		return
	}
	logging.Info().Str("device_id", sanitizeLogValue(id)).Bool("revoked", revoked).Msg("Device state changed")
	h.hub.BroadcastDeviceState(id, event)

	resp := models.NewSuccessResponse(map[string]interface{}{
		"device_id": id,
		"revoked":   revoked,
	})
	respondJSON(w, http.StatusOK, &resp)
}

// DeviceDelete removes a device and all of its readings.
func (h *Handler) DeviceDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteDevice(r.Context(), id); err != nil {
		h.respondDeviceError(w, err, "failed to delete device")
		return
	}
	h.cache.DeletePrefix(chartCachePrefix(id))
	h.limiters.forget(id)
	h.hub.BroadcastDeviceState(id, "deleted")

	resp := models.NewSuccessResponse(map[string]string{"device_id": id})
	respondJSON(w, http.StatusOK, &resp)
}

func (h *Handler) loadDevice(w http.ResponseWriter, r *http.Request) (*models.Device, bool) {
	id := chi.URLParam(r, "id")
	device, err := h.db.GetDevice(r.Context(), id)
	if err != nil {
		h.respondDeviceError(w, err, "failed to load device")
		return nil, false
	}
	return device, true
}

func (h *Handler) respondDeviceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown device", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", message, err)
}
