// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package auth

import (
	"errors"
	"testing"

	"github.com/russs95/airbuddy-online/internal/config"
)

func TestNewAdminAuthenticatorRejectsPlaintext(t *testing.T) {
	_, err := NewAdminAuthenticator(&config.SecurityConfig{
		AdminUsername: "russ",
		AdminPassword: "hunter2",
	})
	if err == nil {
		t.Fatal("plaintext password should be rejected")
	}
}

func TestAdminAuthenticate(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAdminAuthenticator(&config.SecurityConfig{
		AdminUsername: "russ",
		AdminPassword: hash,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Authenticate("russ", "correct horse battery staple"); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	if err := a.Authenticate("russ", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if err := a.Authenticate("intruder", "correct horse battery staple"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong username: err = %v, want ErrInvalidCredentials", err)
	}
}
