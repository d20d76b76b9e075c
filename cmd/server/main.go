// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/russs95/airbuddy-online/internal/api"
	"github.com/russs95/airbuddy-online/internal/auth"
	"github.com/russs95/airbuddy-online/internal/config"
	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/supervisor"
	"github.com/russs95/airbuddy-online/internal/supervisor/services"
	"github.com/russs95/airbuddy-online/internal/web"
	ws "github.com/russs95/airbuddy-online/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting AirBuddy Online")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Int("retention_days", cfg.Retention.Days).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	wsHub := ws.NewHub()

	var jwtManager *auth.JWTManager
	var adminAuth *auth.AdminAuthenticator
	switch cfg.Security.AuthMode {
	case "jwt":
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		adminAuth, err = auth.NewAdminAuthenticator(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize admin authenticator")
		}
		logging.Info().Msg("JWT authentication enabled")
	case "none":
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: Admin authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  The dashboard and admin API are publicly accessible!")
		logging.Warn().Msg("  Device ingest still requires per-device API keys.")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  NEVER use AUTH_MODE=none on public networks!")
		logging.Warn().Msg("============================================================")
	}

	deviceAuth := auth.NewDeviceAuthenticator(db)
	handler := api.NewHandler(db, cfg, wsHub, jwtManager, adminAuth, deviceAuth)

	pages, err := web.NewPages(db, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build dashboard pages")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(&cfg.Security), pages)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Data layer services
	if cfg.Retention.Days > 0 {
		tree.AddDataService(services.NewRetentionService(db, cfg.Retention.Days, cfg.Retention.PruneInterval))
		logging.Info().Int("days", cfg.Retention.Days).Msg("Retention pruner added to supervisor tree")
	} else {
		logging.Info().Msg("Reading retention disabled (RETENTION_DAYS=0)")
	}

	// Messaging layer services
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewStatsService(db, wsHub, 0))
	logging.Info().Msg("WebSocket hub and stats broadcaster added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
