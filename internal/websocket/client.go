// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/russs95/airbuddy-online/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Dashboard clients are receive-only; inbound frames carry no
	// payload worth reading, so the limit only bounds abuse.
	maxInboundBytes = 512
)

// clientIDCounter generates unique, monotonically increasing client IDs
// so broadcast order is deterministic.
var clientIDCounter atomic.Uint64

// Client is one connected dashboard. The hub owns the send channel;
// the client owns the connection and its two goroutines.
//
// Dashboards never send application messages. The inbound side of the
// connection exists only for liveness: the client pings on a ticker,
// the browser answers with protocol pongs, and anything else the peer
// sends is read and discarded.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient creates a new Client with a unique ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, 256),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Start begins the send and liveness goroutines for the client.
func (c *Client) Start() {
	go c.sendLoop()
	go c.livenessLoop()
}

// livenessLoop drains and discards inbound frames until the peer goes
// away. Its real job is the pong handler: each protocol pong extends
// the read deadline, so a browser that stops answering pings times out
// and the client unregisters from the hub.
func (c *Client) livenessLoop() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundBytes)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			return
		}
	}
}

// sendLoop delivers hub broadcasts to the connection and pings on a
// ticker. A closed send channel means the hub dropped the client; the
// loop sends a close frame and exits.
func (c *Client) sendLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.writeControl(websocket.CloseMessage)
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				logging.Error().Err(err).Msg("failed to write JSON message")
				return
			}

		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		}
	}
}

// writeControl sends an empty control frame under the write deadline.
func (c *Client) writeControl(messageType int) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, nil)
}
