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
	"time"

	"github.com/russs95/airbuddy-online/internal/models"
)

const deviceColumns = "id, name, location, api_key_hash, revoked, created_at, last_seen_at"

// CreateDevice inserts a new device row. Returns ErrDeviceExists when the
// ID is already taken.
func (db *DB) CreateDevice(ctx context.Context, device *models.Device) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var exists bool
	err := db.conn.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM devices WHERE id = ?)", device.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check device existence: %w", err)
	}
	if exists {
		return ErrDeviceExists
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO devices (id, name, location, api_key_hash, revoked, created_at)
		 VALUES (?, ?, ?, ?, FALSE, ?)`,
		device.ID, device.Name, nullableString(device.Location), device.APIKeyHash, device.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert device: %w", err)
	}
	return nil
}

// GetDevice returns a single device by ID, or ErrNotFound.
func (db *DB) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE id = ?", id)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return device, nil
}

// ListDevices returns all devices ordered by creation time.
func (db *DB) ListDevices(ctx context.Context) ([]models.Device, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+deviceColumns+" FROM devices ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer closeWithLog(rows, "device rows")

	devices := make([]models.Device, 0)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, *device)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate devices: %w", err)
	}
	return devices, nil
}

// UpdateDevice updates mutable attributes of a device.
func (db *DB) UpdateDevice(ctx context.Context, id string, req *models.DeviceUpdateRequest) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	device, err := db.GetDevice(ctx, id)
	if err != nil {
		return err
	}

	name := device.Name
	if req.Name != "" {
		name = req.Name
	}
	location := device.Location
	if req.Location != "" {
		location = req.Location
	}

	_, err = db.conn.ExecContext(ctx,
		"UPDATE devices SET name = ?, location = ? WHERE id = ?",
		name, nullableString(location), id)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}
	return nil
}

// SetDeviceRevoked flips the revocation flag. Revoked devices fail
// telemetry auth until re-enabled.
func (db *DB) SetDeviceRevoked(ctx context.Context, id string, revoked bool) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		"UPDATE devices SET revoked = ? WHERE id = ?", revoked, id)
	if err != nil {
		return fmt.Errorf("failed to update revocation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDevice removes a device and all of its readings.
func (db *DB) DeleteDevice(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := db.conn.ExecContext(ctx, "DELETE FROM readings WHERE device_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete device readings: %w", err)
	}
	return nil
}

// TouchDeviceLastSeen records that a device successfully authenticated.
func (db *DB) TouchDeviceLastSeen(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		"UPDATE devices SET last_seen_at = ? WHERE id = ?", at, id)
	if err != nil {
		return fmt.Errorf("failed to touch last_seen_at: %w", err)
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanDevice.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDevice(row rowScanner) (*models.Device, error) {
	var (
		device   models.Device
		location sql.NullString
		lastSeen sql.NullTime
	)
	err := row.Scan(&device.ID, &device.Name, &location, &device.APIKeyHash,
		&device.Revoked, &device.CreatedAt, &lastSeen)
	if err != nil {
		return nil, err
	}
	device.Location = location.String
	if lastSeen.Valid {
		t := lastSeen.Time
		device.LastSeenAt = &t
	}
	return &device, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
