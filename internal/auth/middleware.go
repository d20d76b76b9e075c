// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/models"
)

type contextKey string

const (
	claimsKey contextKey = "admin_claims"
	deviceKey contextKey = "auth_device"
)

// RequireAdmin returns middleware that validates the admin JWT from the
// Authorization header (Bearer scheme) or the session cookie. When
// authMode is "none" every request passes through unauthenticated.
func RequireAdmin(jwtManager *JWTManager, authMode string, reject func(w http.ResponseWriter, r *http.Request, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authMode == "none" {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				reject(w, r, "missing credentials")
				return
			}

			claims, err := jwtManager.ValidateToken(token)
			if err != nil {
				logging.Debug().Err(err).Msg("JWT validation failed")
				reject(w, r, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireDevice returns middleware that authenticates a sensor from the
// X-Device-ID and X-API-Key headers and stores the device in the
// request context. reject maps auth failures to HTTP responses so the
// API package keeps control of the response envelope.
func RequireDevice(authenticator *DeviceAuthenticator, reject func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := r.Header.Get(HeaderDeviceID)
			apiKey := r.Header.Get(HeaderAPIKey)

			device, err := authenticator.Authenticate(r.Context(), deviceID, apiKey)
			if err != nil {
				if !errors.Is(err, ErrDeviceAuthFailed) && !errors.Is(err, ErrDeviceRevoked) {
					logging.Error().Err(err).Msg("Device auth lookup failed")
				}
				reject(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), deviceKey, device)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the admin claims stored by RequireAdmin, or
// nil when auth is disabled or the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// DeviceFromContext returns the authenticated device stored by
// RequireDevice.
func DeviceFromContext(ctx context.Context) *models.Device {
	device, _ := ctx.Value(deviceKey).(*models.Device)
	return device
}

// extractToken pulls the JWT from the Authorization header or the
// session cookie, in that order.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("airbuddy_session"); err == nil {
		return cookie.Value
	}
	return ""
}
