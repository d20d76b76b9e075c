// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/russs95/airbuddy-online/internal/models"
)

func TestCreateAndGetDevice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created := seedDevice(t, db, "ab-test-1")

	got, err := db.GetDevice(ctx, "ab-test-1")
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if got.ID != created.ID || got.Name != created.Name || got.Location != created.Location {
		t.Errorf("got %+v, want %+v", got, created)
	}
	if got.Revoked {
		t.Error("new device should not be revoked")
	}
	if got.LastSeenAt != nil {
		t.Error("new device should have no last_seen_at")
	}
}

func TestCreateDeviceDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	seedDevice(t, db, "ab-dup")

	err := db.CreateDevice(context.Background(), &models.Device{
		ID:         "ab-dup",
		Name:       "Other",
		APIKeyHash: "ff",
		CreatedAt:  time.Now().UTC(),
	})
	if !errors.Is(err, ErrDeviceExists) {
		t.Fatalf("err = %v, want ErrDeviceExists", err)
	}
}

func TestGetDeviceNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.GetDevice(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListDevices(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	devices, err := db.ListDevices(ctx)
	if err != nil {
		t.Fatalf("ListDevices on empty db: %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("expected empty list, got %d", len(devices))
	}

	seedDevice(t, db, "ab-a")
	seedDevice(t, db, "ab-b")

	devices, err = db.ListDevices(ctx)
	if err != nil {
		t.Fatalf("ListDevices: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
}

func TestUpdateDevice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-upd")

	err := db.UpdateDevice(ctx, "ab-upd", &models.DeviceUpdateRequest{Name: "Renamed"})
	if err != nil {
		t.Fatalf("UpdateDevice: %v", err)
	}
	got, err := db.GetDevice(ctx, "ab-upd")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", got.Name)
	}
	// Location untouched when omitted from the update.
	if got.Location != "Bench" {
		t.Errorf("location = %q, want Bench", got.Location)
	}

	if err := db.UpdateDevice(ctx, "missing", &models.DeviceUpdateRequest{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of missing device: err = %v, want ErrNotFound", err)
	}
}

func TestSetDeviceRevoked(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-rev")

	if err := db.SetDeviceRevoked(ctx, "ab-rev", true); err != nil {
		t.Fatalf("SetDeviceRevoked: %v", err)
	}
	got, err := db.GetDevice(ctx, "ab-rev")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Revoked {
		t.Error("device should be revoked")
	}

	if err := db.SetDeviceRevoked(ctx, "ab-rev", false); err != nil {
		t.Fatalf("un-revoke: %v", err)
	}
	got, _ = db.GetDevice(ctx, "ab-rev")
	if got.Revoked {
		t.Error("device should be un-revoked")
	}

	if err := db.SetDeviceRevoked(ctx, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoke of missing device: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDeviceRemovesReadings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-del")

	if _, err := db.InsertReading(ctx, "ab-del", &models.IngestRequest{RecordedAt: 1000, Values: map[string]float64{"temp_c": 20}}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteDevice(ctx, "ab-del"); err != nil {
		t.Fatalf("DeleteDevice: %v", err)
	}
	if _, err := db.GetDevice(ctx, "ab-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("device still present after delete: %v", err)
	}
	data, err := db.GetSeriesData(ctx, "ab-del", 86400)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Timestamps) != 0 {
		t.Errorf("readings survived device deletion: %d rows", len(data.Timestamps))
	}

	if err := db.DeleteDevice(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete of missing device: err = %v, want ErrNotFound", err)
	}
}

func TestTouchDeviceLastSeen(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDevice(t, db, "ab-seen")

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if err := db.TouchDeviceLastSeen(ctx, "ab-seen", at); err != nil {
		t.Fatalf("TouchDeviceLastSeen: %v", err)
	}
	got, err := db.GetDevice(ctx, "ab-seen")
	if err != nil {
		t.Fatal(err)
	}
	if got.LastSeenAt == nil {
		t.Fatal("last_seen_at not set")
	}
	if !got.LastSeenAt.Equal(at) {
		t.Errorf("last_seen_at = %v, want %v", got.LastSeenAt, at)
	}
}
