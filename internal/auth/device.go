// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/russs95/airbuddy-online/internal/database"
	"github.com/russs95/airbuddy-online/internal/models"
)

// Request headers carrying sensor credentials.
const (
	HeaderDeviceID = "X-Device-ID"
	HeaderAPIKey   = "X-API-Key"
)

// apiKeyBytes is the entropy of a generated device key (32 bytes,
// 64 hex characters).
const apiKeyBytes = 32

var (
	// ErrDeviceAuthFailed is returned for unknown devices and wrong
	// keys alike, so probes cannot enumerate device IDs.
	ErrDeviceAuthFailed = errors.New("device authentication failed")

	// ErrDeviceRevoked is returned when the key is correct but the
	// device has been revoked.
	ErrDeviceRevoked = errors.New("device is revoked")
)

// DeviceStore is the subset of database access device auth needs.
type DeviceStore interface {
	GetDevice(ctx context.Context, id string) (*models.Device, error)
}

// DeviceAuthenticator verifies sensor credentials against stored key
// hashes.
type DeviceAuthenticator struct {
	store DeviceStore
}

// NewDeviceAuthenticator creates a device authenticator backed by the
// given store.
func NewDeviceAuthenticator(store DeviceStore) *DeviceAuthenticator {
	return &DeviceAuthenticator{store: store}
}

// Authenticate verifies a device ID and API key pair and returns the
// device on success. The key hash comparison is constant-time, and a
// dummy comparison runs for unknown devices so lookup hits and misses
// take similar time.
func (a *DeviceAuthenticator) Authenticate(ctx context.Context, deviceID, apiKey string) (*models.Device, error) {
	if deviceID == "" || apiKey == "" {
		return nil, ErrDeviceAuthFailed
	}

	keyHash := HashAPIKey(apiKey)

	device, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			subtle.ConstantTimeCompare([]byte(keyHash), []byte(keyHash))
			return nil, ErrDeviceAuthFailed
		}
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(keyHash), []byte(device.APIKeyHash)) != 1 {
		return nil, ErrDeviceAuthFailed
	}
	if device.Revoked {
		return nil, ErrDeviceRevoked
	}
	return device, nil
}

// GenerateAPIKey creates a new random device key. The plaintext is
// returned to the caller exactly once; only the hash is stored.
func GenerateAPIKey() (plaintext, hash string, err error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate API key: %w", err)
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, HashAPIKey(plaintext), nil
}

// HashAPIKey returns the SHA-256 hex digest of an API key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
