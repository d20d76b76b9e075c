// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordIngest(t *testing.T) {
	accepted := testutil.ToFloat64(IngestAccepted)
	duplicates := testutil.ToFloat64(IngestDuplicates)

	RecordIngest(false)
	RecordIngest(true)
	RecordIngest(true)

	if got := testutil.ToFloat64(IngestAccepted) - accepted; got != 1 {
		t.Errorf("accepted delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(IngestDuplicates) - duplicates; got != 2 {
		t.Errorf("duplicate delta = %v, want 2", got)
	}
}

func TestRecordDBQueryCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert_reading"))

	RecordDBQuery("insert_reading", 5*time.Millisecond, nil)
	RecordDBQuery("insert_reading", 5*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert_reading")) - before; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200"))
	RecordAPIRequest("GET", "/api/v1/stats", 200, 10*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200")) - before; got != 1 {
		t.Errorf("request delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge = %v, want %v", got, before)
	}
}
