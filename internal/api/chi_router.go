// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/metrics"
	"github.com/russs95/airbuddy-online/internal/middleware"
)

// DashboardPages serves the server-rendered HTML surface, implemented
// by internal/web. Nil disables the dashboard routes (API-only mode).
type DashboardPages interface {
	Index(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

// Router assembles the Chi route tree from the handler and the
// middleware factories.
type Router struct {
	handler    *Handler
	middleware *ChiMiddleware
	dashboard  DashboardPages
}

// NewRouter creates a router. dashboard may be nil.
func NewRouter(handler *Handler, mw *ChiMiddleware, dashboard DashboardPages) *Router {
	return &Router{
		handler:    handler,
		middleware: mw,
		dashboard:  dashboard,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	h := router.handler
	adminOnly := auth.RequireAdmin(h.jwtManager, h.config.Security.AuthMode, rejectAdmin)
	deviceOnly := auth.RequireDevice(h.deviceAuth, rejectDevice)

	// Health: permissive limit so monitoring probes never trip it.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.middleware.RateLimitFor(RateLimitHealth, "health"))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Auth: strict login limit against credential stuffing.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.With(router.middleware.RateLimitFor(RateLimitLogin, "login")).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Ingest: device credentials; the per-device token bucket inside the
	// handler does the real throttling, the IP limit only caps floods.
	r.Route("/api/v1/telemetry", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(deviceOnly)
		r.Post("/", h.Telemetry)
	})

	// Session-authenticated data endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(adminOnly)

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimitFor(RateLimitChart, "chart"))
			r.Get("/chart/{deviceID}", h.Chart)
			r.Get("/chart/{deviceID}/hover", h.ChartHover)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimit())
			r.Get("/stats", h.Stats)
			r.Get("/ws", h.WebSocket)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", h.DevicesList)
				r.Post("/", h.DeviceCreate)
				r.Get("/{id}", h.DeviceGet)
				r.Put("/{id}", h.DeviceUpdate)
				r.Delete("/{id}", h.DeviceDelete)
				r.Post("/{id}/revoke", h.DeviceRevoke)
				r.Post("/{id}/restore", h.DeviceRestore)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	if router.dashboard != nil {
		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimitFor(RateLimitHealth, "dashboard"))
			r.Use(adminOnly)
			r.Get("/", router.dashboard.Index)
			r.Get("/dashboard/{deviceID}", router.dashboard.Dashboard)
		})
	}

	return r
}

// rejectAdmin writes the envelope for failed session auth.
func rejectAdmin(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", message, nil)
}

// rejectDevice maps device auth failures: bad credentials and revoked
// keys are distinct so fleet operators can tell compromised keys from
// decommissioned hardware in their logs.
func rejectDevice(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrDeviceRevoked):
		metrics.IngestRejected.WithLabelValues("revoked").Inc()
		respondError(w, http.StatusForbidden, "DEVICE_REVOKED", "device key has been revoked", nil)
	case errors.Is(err, auth.ErrDeviceAuthFailed):
		metrics.IngestRejected.WithLabelValues("auth").Inc()
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid device credentials", nil)
	default:
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "device lookup failed", err)
	}
}
