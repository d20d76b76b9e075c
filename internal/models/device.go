// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package models

import (
	"time"
)

// Device is a registered sensor node. The API key is stored as a SHA-256
// hex digest; the plaintext key is shown exactly once at registration.
type Device struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Location   string     `json:"location,omitempty"`
	APIKeyHash string     `json:"-"`
	Revoked    bool       `json:"revoked"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// DeviceCreateRequest registers a new sensor node. ID is optional; when
// empty the server assigns a UUID.
type DeviceCreateRequest struct {
	ID       string `json:"id,omitempty" validate:"omitempty,min=3,max=64,deviceid"`
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Location string `json:"location,omitempty" validate:"omitempty,max=256"`
}

// DeviceCreateResponse carries the one-time plaintext API key alongside
// the stored device record.
type DeviceCreateResponse struct {
	Device Device `json:"device"`
	APIKey string `json:"api_key"`
}

// DeviceUpdateRequest updates mutable device attributes.
type DeviceUpdateRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Location string `json:"location,omitempty" validate:"omitempty,max=256"`
}

// LoginRequest authenticates the dashboard admin.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
