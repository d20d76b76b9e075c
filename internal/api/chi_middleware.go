// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/russs95/airbuddy-online/internal/config"
	"github.com/russs95/airbuddy-online/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for the Chi middleware
// factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// ChiMiddleware provides Chi-compatible middleware factories built on
// the go-chi ecosystem (cors, httprate).
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates middleware factories from the security
// config section.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	mwCfg := &ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.CORSOrigins,
		RateLimitRequests:  cfg.RateLimitReqs,
		RateLimitWindow:    cfg.RateLimitWindow,
		RateLimitDisabled:  cfg.RateLimitDisabled,
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   mwCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Device-ID", "X-API-Key"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return &ChiMiddleware{
		config: mwCfg,
		cors:   corsHandler,
	}
}

// CORS returns the CORS middleware built from the configured origins.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitConfig defines rate limit parameters for specific endpoint
// groups.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Per-group limits. Login is strict against credential stuffing; health
// is permissive so monitoring probes never trip it; the dashboard and
// chart endpoints get burst room because one page load fetches several
// ranges.
var (
	RateLimitLogin  = RateLimitConfig{Requests: 5, Window: 5 * time.Minute}
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
	RateLimitChart  = RateLimitConfig{Requests: 600, Window: time.Minute}
)

// RateLimit returns the default IP-based limiter from the security
// config.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.custom(RateLimitConfig{
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	}, "api")
}

// RateLimitFor returns an IP-based limiter with group-specific
// parameters. The endpoint label feeds the rate limit hit counter.
func (m *ChiMiddleware) RateLimitFor(cfg RateLimitConfig, endpoint string) func(http.Handler) http.Handler {
	return m.custom(cfg, endpoint)
}

func (m *ChiMiddleware) custom(cfg RateLimitConfig, endpoint string) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests", nil)
		}),
	)
}
