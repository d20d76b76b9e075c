// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package services

import (
	"context"
	"time"

	"github.com/russs95/airbuddy-online/internal/logging"
	"github.com/russs95/airbuddy-online/internal/metrics"
)

// ReadingsPruner is the subset of database access the retention loop
// needs.
type ReadingsPruner interface {
	PruneReadings(ctx context.Context, cutoff int64) (int64, error)
}

// RetentionService periodically deletes readings older than the
// configured retention window. With retention disabled (days <= 0) the
// service is not registered at all.
type RetentionService struct {
	db       ReadingsPruner
	days     int
	interval time.Duration
	name     string
}

// NewRetentionService creates a retention pruner that runs every
// interval and removes readings recorded more than days ago.
func NewRetentionService(db ReadingsPruner, days int, interval time.Duration) *RetentionService {
	return &RetentionService{
		db:       db,
		days:     days,
		interval: interval,
		name:     "retention-pruner",
	}
}

// Serve implements suture.Service. The first prune runs one interval
// after startup so server restarts do not stack prune cycles.
func (s *RetentionService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.prune(ctx)
		}
	}
}

func (s *RetentionService) prune(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -s.days).Unix()
	start := time.Now()

	removed, err := s.db.PruneReadings(ctx, cutoff)
	if err != nil {
		metrics.RetentionPruneRuns.WithLabelValues("error").Inc()
		logging.Error().Err(err).Msg("Retention prune failed")
		return
	}

	metrics.RetentionPruneRuns.WithLabelValues("ok").Inc()
	metrics.RetentionPrunedReadings.Add(float64(removed))
	logging.Info().
		Int64("removed", removed).
		Int64("cutoff", cutoff).
		Dur("took", time.Since(start)).
		Msg("Retention prune completed")
}

// String implements fmt.Stringer.
func (s *RetentionService) String() string {
	return s.name
}
