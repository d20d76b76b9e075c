// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package models

import (
	"time"
)

// Stats is the network-wide summary served by GET /api/v1/stats and
// pushed to dashboard websocket clients.
type Stats struct {
	TotalDevices    int64      `json:"total_devices"`
	ActiveDevices   int64      `json:"active_devices"`
	RevokedDevices  int64      `json:"revoked_devices"`
	TotalReadings   int64      `json:"total_readings"`
	ReadingsLast24h int64      `json:"readings_last_24h"`
	LatestReading   *time.Time `json:"latest_reading,omitempty"`
}

// DeviceStats summarizes a single device for the device list view.
type DeviceStats struct {
	Device        Device   `json:"device"`
	ReadingCount  int64    `json:"reading_count"`
	LatestReading *Reading `json:"latest_reading,omitempty"`
}
