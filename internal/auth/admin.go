// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/russs95/airbuddy-online/internal/config"
)

// ErrInvalidCredentials is returned for any admin login failure. The
// same error covers unknown username and wrong password so responses do
// not leak which one was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminAuthenticator verifies dashboard admin logins against the
// configured username and bcrypt password hash.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewAdminAuthenticator builds an authenticator from the security
// config. AdminPassword must hold a bcrypt hash, not a plaintext
// password; a plaintext value fails fast here rather than at first
// login.
func NewAdminAuthenticator(cfg *config.SecurityConfig) (*AdminAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(cfg.AdminPassword)); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be a bcrypt hash: %w", err)
	}
	return &AdminAuthenticator{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPassword),
	}, nil
}

// Authenticate checks a username/password pair. The username comparison
// is constant-time and the bcrypt check runs even for wrong usernames,
// keeping the timing of both failure modes indistinguishable.
func (a *AdminAuthenticator) Authenticate(username, password string) error {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !usernameOK || err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for use as the ADMIN_PASSWORD
// value. Exposed for the hash-password CLI helper.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
