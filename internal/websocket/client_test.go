// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/russs95/airbuddy-online/internal/models"
)

// dialTestClient upgrades an incoming connection into a hub client and
// returns the browser side of the socket.
func dialTestClient(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(h, conn)
		h.Register <- client
		client.Start()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = peer.Close() })
	return peer
}

func TestClientReceivesBroadcast(t *testing.T) {
	h, cancel, _ := startHub(t)
	defer cancel()

	peer := dialTestClient(t, h)
	waitForClients(t, h, 1)

	h.BroadcastReading(&models.Reading{DeviceID: "ab-kitchen", RecordedAt: 1_700_000_000})

	_ = peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := peer.ReadJSON(&msg); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if msg.Type != MessageTypeReading {
		t.Errorf("message type = %q, want %q", msg.Type, MessageTypeReading)
	}
}

func TestClientDiscardsInboundFrames(t *testing.T) {
	h, cancel, _ := startHub(t)
	defer cancel()

	peer := dialTestClient(t, h)
	waitForClients(t, h, 1)

	// A chatty peer must not disturb delivery.
	if err := peer.WriteMessage(websocket.TextMessage, []byte(`{"type":"whatever"}`)); err != nil {
		t.Fatalf("write inbound frame: %v", err)
	}

	h.BroadcastStatsUpdate(&models.Stats{TotalReadings: 7})

	_ = peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := peer.ReadJSON(&msg); err != nil {
		t.Fatalf("read broadcast after inbound frame: %v", err)
	}
	if msg.Type != MessageTypeStatsUpdate {
		t.Errorf("message type = %q, want %q", msg.Type, MessageTypeStatsUpdate)
	}
	if h.GetClientCount() != 1 {
		t.Errorf("client count = %d, want 1", h.GetClientCount())
	}
}

func TestClientUnregistersOnDisconnect(t *testing.T) {
	h, cancel, _ := startHub(t)
	defer cancel()

	peer := dialTestClient(t, h)
	waitForClients(t, h, 1)

	_ = peer.Close()
	waitForClients(t, h, 0)
}

func TestClientIDsAreUnique(t *testing.T) {
	h := NewHub()
	a := NewClient(h, nil)
	b := NewClient(h, nil)
	if a.ID() == b.ID() {
		t.Errorf("duplicate client IDs: %d", a.ID())
	}
	if b.ID() <= a.ID() {
		t.Errorf("IDs not monotonic: %d then %d", a.ID(), b.ID())
	}
}
