// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/models"
)

const sessionCookieName = "airbuddy_session"

// Login authenticates the dashboard admin and issues a JWT, both in the
// response body and as an HttpOnly session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.config.Security.AuthMode == "none" {
		respondError(w, http.StatusBadRequest, "AUTH_DISABLED", "authentication is disabled", nil)
		return
	}

	var req models.LoginRequest
	if err := decodeBody(w, r, 4<<10, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "malformed request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.adminAuth.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Failed login attempt")
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid username or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "login failed", err)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, "admin")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token", err)
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.Timeout())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})

	resp := models.NewSuccessResponse(models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
	respondJSON(w, http.StatusOK, &resp)
}

// Logout clears the session cookie. The JWT itself stays valid until
// expiry; sessions are short enough that a revocation list is not
// worth carrying.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	resp := models.NewSuccessResponse(map[string]bool{"logged_out": true})
	respondJSON(w, http.StatusOK, &resp)
}
