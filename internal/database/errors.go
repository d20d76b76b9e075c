// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package database

import (
	"errors"
	"io"

	"github.com/russs95/airbuddy-online/internal/logging"
)

// Sentinel errors returned by data access methods. Callers match them
// with errors.Is to choose an HTTP status.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDeviceExists indicates a device registration collided with an
	// existing device ID.
	ErrDeviceExists = errors.New("device already exists")
)

// closeWithLog closes a resource and logs any error. Use for cleanup
// where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error. Use in
// error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
