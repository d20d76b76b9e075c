// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package services

import (
	"context"
	"time"

	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/models"
)

// StatsSource provides the network-wide summary.
type StatsSource interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

// StatsBroadcaster pushes summaries to connected dashboards.
type StatsBroadcaster interface {
	BroadcastStatsUpdate(stats *models.Stats)
	GetClientCount() int
}

// StatsService periodically broadcasts a fresh network summary to open
// dashboards so header counters stay live without polling.
type StatsService struct {
	db       StatsSource
	hub      StatsBroadcaster
	interval time.Duration
	name     string
}

// NewStatsService creates a stats broadcaster running at the given
// interval.
func NewStatsService(db StatsSource, hub StatsBroadcaster, interval time.Duration) *StatsService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatsService{
		db:       db,
		hub:      hub,
		interval: interval,
		name:     "stats-broadcaster",
	}
}

// Serve implements suture.Service. The stats query is skipped entirely
// while no dashboard is connected.
func (s *StatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.hub.GetClientCount() == 0 {
				continue
			}
			stats, err := s.db.GetStats(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("Stats broadcast query failed")
				continue
			}
			s.hub.BroadcastStatsUpdate(stats)
		}
	}
}

// String implements fmt.Stringer.
func (s *StatsService) String() string {
	return s.name
}
