// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/russs95/airbuddy-online/internal/models"
)

// mockHTTPServer implements HTTPServer for service lifecycle tests.
type mockHTTPServer struct {
	serveErr    error
	serveDone   chan struct{}
	shutdownErr error
	shutdowns   atomic.Int32
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{serveDone: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	<-m.serveDone
	if m.serveErr != nil {
		return m.serveErr
	}
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	close(m.serveDone)
	return m.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := newMockHTTPServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", srv.shutdowns.Load())
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	srv := newMockHTTPServer()
	srv.serveErr = errors.New("listen tcp :4400: address already in use")
	close(srv.serveDone)
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.serveErr) {
		t.Errorf("Serve returned %v, want wrapped listen error", err)
	}
}

func TestHTTPServerServiceShutdownFailure(t *testing.T) {
	srv := newMockHTTPServer()
	srv.shutdownErr = errors.New("connections still active")
	svc := NewHTTPServerService(srv, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err == nil || !errors.Is(err, srv.shutdownErr) {
			t.Errorf("Serve returned %v, want wrapped shutdown error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerServiceName(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if got := svc.String(); got != "http-server" {
		t.Errorf("String() = %q, want %q", got, "http-server")
	}
}

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []int64
	removed int64
	err     error
	called  chan struct{}
}

func (f *fakePruner) PruneReadings(ctx context.Context, cutoff int64) (int64, error) {
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	select {
	case f.called <- struct{}{}:
	default:
	}
	return f.removed, f.err
}

func TestRetentionServicePrunes(t *testing.T) {
	pruner := &fakePruner{removed: 7, called: make(chan struct{}, 1)}
	svc := NewRetentionService(pruner, 30, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Serve(ctx)

	select {
	case <-pruner.called:
	case <-time.After(2 * time.Second):
		t.Fatal("prune never ran")
	}

	pruner.mu.Lock()
	cutoff := pruner.cutoffs[0]
	pruner.mu.Unlock()

	want := time.Now().AddDate(0, 0, -30).Unix()
	if cutoff < want-5 || cutoff > want+5 {
		t.Errorf("cutoff = %d, want near %d", cutoff, want)
	}
}

func TestRetentionServiceSurvivesPruneError(t *testing.T) {
	pruner := &fakePruner{err: errors.New("db locked"), called: make(chan struct{}, 1)}
	svc := NewRetentionService(pruner, 7, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// Two ticks worth: the loop must keep running after a failed prune.
	<-pruner.called
	<-pruner.called
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

type fakeStatsSource struct {
	stats *models.Stats
	err   error
	calls atomic.Int32
}

func (f *fakeStatsSource) GetStats(ctx context.Context) (*models.Stats, error) {
	f.calls.Add(1)
	return f.stats, f.err
}

type fakeStatsHub struct {
	clients   atomic.Int32
	broadcast chan *models.Stats
}

func (f *fakeStatsHub) BroadcastStatsUpdate(stats *models.Stats) {
	select {
	case f.broadcast <- stats:
	default:
	}
}

func (f *fakeStatsHub) GetClientCount() int { return int(f.clients.Load()) }

func TestStatsServiceBroadcasts(t *testing.T) {
	src := &fakeStatsSource{stats: &models.Stats{TotalDevices: 3, TotalReadings: 42}}
	hub := &fakeStatsHub{broadcast: make(chan *models.Stats, 1)}
	hub.clients.Store(2)

	svc := NewStatsService(src, hub, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Serve(ctx)

	select {
	case stats := <-hub.broadcast:
		if stats.TotalDevices != 3 || stats.TotalReadings != 42 {
			t.Errorf("broadcast stats = %+v", stats)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no stats broadcast")
	}
}

func TestStatsServiceSkipsQueryWithoutClients(t *testing.T) {
	src := &fakeStatsSource{stats: &models.Stats{}}
	hub := &fakeStatsHub{broadcast: make(chan *models.Stats, 1)}

	svc := NewStatsService(src, hub, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Serve(ctx)

	time.Sleep(60 * time.Millisecond)
	if got := src.calls.Load(); got != 0 {
		t.Errorf("GetStats called %d times with zero clients, want 0", got)
	}
}

func TestStatsServiceDefaultInterval(t *testing.T) {
	svc := NewStatsService(&fakeStatsSource{}, &fakeStatsHub{}, 0)
	if svc.interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", svc.interval)
	}
}

type fakeContextHub struct {
	ran atomic.Bool
}

func (f *fakeContextHub) RunWithContext(ctx context.Context) error {
	f.ran.Store(true)
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubServiceDelegates(t *testing.T) {
	hub := &fakeContextHub{}
	svc := NewWebSocketHubService(hub)
	if got := svc.String(); got != "websocket-hub" {
		t.Errorf("String() = %q, want %q", got, "websocket-hub")
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	if !hub.ran.Load() {
		t.Error("RunWithContext never invoked")
	}
}
