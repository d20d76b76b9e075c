// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/russs95/airbuddy-online/internal/models"
)

const insertReadingQuery = `
	INSERT INTO readings (device_id, recorded_at, temp_c, rh, eco2_ppm, tvoc_ppb, pm25_ugm3,
		confidence, flags, lat, lon, alt_m, received_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING`

// InsertReading stores one telemetry sample. The (device_id, recorded_at)
// primary key makes the insert idempotent: a replayed sample is reported
// as a duplicate instead of an error, and the stored row is never
// overwritten. Unknown metric names in req.Values are not stored.
func (db *DB) InsertReading(ctx context.Context, deviceID string, req *models.IngestRequest) (duplicate bool, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.preparedStmt(ctx, insertReadingQuery)
	if err != nil {
		return false, err
	}

	known, _ := req.KnownValues()
	cols := make([]interface{}, 0, len(models.MetricNames))
	for _, name := range models.MetricNames {
		if v, ok := known[name]; ok {
			cols = append(cols, v)
		} else {
			cols = append(cols, nil)
		}
	}

	confidence, err := jsonOrNil(req.Confidence)
	if err != nil {
		return false, fmt.Errorf("failed to encode confidence: %w", err)
	}
	flags, err := jsonOrNil(req.Flags)
	if err != nil {
		return false, fmt.Errorf("failed to encode flags: %w", err)
	}

	args := append([]interface{}{deviceID, req.RecordedAt}, cols...)
	args = append(args, confidence, flags,
		nullableFloat(req.Lat), nullableFloat(req.Lon), nullableFloat(req.AltM),
		time.Now().UTC())

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert reading: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 0, nil
}

// GetSeriesData returns a device's samples covering spanSeconds before
// its latest stored sample, as parallel arrays ordered by recorded_at.
// The span is anchored to the latest sample rather than wall clock, so
// a sensor that stopped reporting still renders its final window.
// NULL metric columns surface as NaN.
func (db *DB) GetSeriesData(ctx context.Context, deviceID string, spanSeconds int64) (*models.SeriesData, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	data := &models.SeriesData{
		DeviceID:   deviceID,
		Timestamps: []float64{},
		Values:     make(map[string][]float64, len(models.MetricNames)),
	}
	for _, name := range models.MetricNames {
		data.Values[name] = []float64{}
	}

	var latest sql.NullInt64
	err := db.conn.QueryRowContext(ctx,
		"SELECT MAX(recorded_at) FROM readings WHERE device_id = ?", deviceID).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest reading: %w", err)
	}
	if !latest.Valid {
		return data, nil
	}

	cutoff := latest.Int64 - spanSeconds
	rows, err := db.conn.QueryContext(ctx,
		`SELECT recorded_at, temp_c, rh, eco2_ppm, tvoc_ppb, pm25_ugm3
		 FROM readings
		 WHERE device_id = ? AND recorded_at >= ?
		 ORDER BY recorded_at`,
		deviceID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer closeWithLog(rows, "reading rows")

	for rows.Next() {
		var (
			recordedAt int64
			cols       [5]sql.NullFloat64
		)
		if err := rows.Scan(&recordedAt, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4]); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		data.Timestamps = append(data.Timestamps, float64(recordedAt))
		for i, name := range models.MetricNames {
			data.Values[name] = append(data.Values[name], floatOrNaN(cols[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return data, nil
}

// GetLatestReading returns a device's most recent sample, or ErrNotFound
// when the device has no readings.
func (db *DB) GetLatestReading(ctx context.Context, deviceID string) (*models.Reading, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT device_id, recorded_at, temp_c, rh, eco2_ppm, tvoc_ppb, pm25_ugm3,
			confidence, flags, lat, lon, alt_m, received_at
		 FROM readings WHERE device_id = ?
		 ORDER BY recorded_at DESC LIMIT 1`, deviceID)

	var (
		reading           models.Reading
		cols              [5]sql.NullFloat64
		confidence, flags sql.NullString
		lat, lon, altM    sql.NullFloat64
	)
	err := row.Scan(&reading.DeviceID, &reading.RecordedAt,
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
		&confidence, &flags, &lat, &lon, &altM, &reading.ReceivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	reading.TempC = floatPtr(cols[0])
	reading.RH = floatPtr(cols[1])
	reading.ECO2PPM = floatPtr(cols[2])
	reading.TVOCPPB = floatPtr(cols[3])
	reading.PM25UGM3 = floatPtr(cols[4])
	reading.Lat = floatPtr(lat)
	reading.Lon = floatPtr(lon)
	reading.AltM = floatPtr(altM)
	if confidence.Valid && confidence.String != "" {
		if err := json.Unmarshal([]byte(confidence.String), &reading.Confidence); err != nil {
			return nil, fmt.Errorf("failed to decode confidence: %w", err)
		}
	}
	if flags.Valid && flags.String != "" {
		if err := json.Unmarshal([]byte(flags.String), &reading.Flags); err != nil {
			return nil, fmt.Errorf("failed to decode flags: %w", err)
		}
	}
	return &reading, nil
}

// GetStats returns the network-wide summary.
func (db *DB) GetStats(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stats := &models.Stats{}
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM devices),
			(SELECT COUNT(*) FROM devices WHERE revoked),
			(SELECT COUNT(*) FROM readings),
			(SELECT COUNT(*) FROM readings WHERE recorded_at >= ?)`,
		time.Now().Add(-24*time.Hour).Unix()).
		Scan(&stats.TotalDevices, &stats.RevokedDevices, &stats.TotalReadings, &stats.ReadingsLast24h)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	stats.ActiveDevices = stats.TotalDevices - stats.RevokedDevices

	var latest sql.NullInt64
	if err := db.conn.QueryRowContext(ctx,
		"SELECT MAX(recorded_at) FROM readings").Scan(&latest); err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	if latest.Valid {
		t := time.Unix(latest.Int64, 0).UTC()
		stats.LatestReading = &t
	}
	return stats, nil
}

// GetDeviceStats returns per-device summaries for the device list view.
func (db *DB) GetDeviceStats(ctx context.Context) ([]models.DeviceStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	devices, err := db.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.DeviceStats, 0, len(devices))
	for _, device := range devices {
		ds := models.DeviceStats{Device: device}
		err := db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM readings WHERE device_id = ?", device.ID).
			Scan(&ds.ReadingCount)
		if err != nil {
			return nil, fmt.Errorf("failed to count readings for %s: %w", device.ID, err)
		}
		if ds.ReadingCount > 0 {
			latest, err := db.GetLatestReading(ctx, device.ID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			ds.LatestReading = latest
		}
		out = append(out, ds)
	}
	return out, nil
}

// PruneReadings deletes readings recorded before the cutoff (unix
// seconds) and returns the number of rows removed.
func (db *DB) PruneReadings(ctx context.Context, cutoff int64) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		"DELETE FROM readings WHERE recorded_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune readings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// jsonOrNil encodes a per-metric annotation map for a TEXT column,
// storing NULL when the map is empty.
func jsonOrNil[V float64 | string](m map[string]V) (interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
