// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables and indexes.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS devices (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT,
			api_key_hash TEXT NOT NULL,
			revoked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_seen_at TIMESTAMP
		)`,

		// recorded_at is the sensor's own clock in unix seconds. The
		// composite primary key makes backlog replays idempotent via
		// ON CONFLICT DO NOTHING.
		`CREATE TABLE IF NOT EXISTS readings (
			device_id TEXT NOT NULL,
			recorded_at BIGINT NOT NULL,
			temp_c DOUBLE,
			rh DOUBLE,
			eco2_ppm DOUBLE,
			tvoc_ppb DOUBLE,
			pm25_ugm3 DOUBLE,
			confidence TEXT,
			flags TEXT,
			lat DOUBLE,
			lon DOUBLE,
			alt_m DOUBLE,
			received_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (device_id, recorded_at)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_readings_recorded_at
			ON readings (recorded_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}
