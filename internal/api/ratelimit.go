// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// deviceLimiters holds one token bucket per device so a single chatty
// sensor cannot crowd out the rest of the fleet. The IP-based httprate
// limiter does not work here: a whole fleet often sits behind one NAT
// address.
type deviceLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newDeviceLimiters(perSecond float64, burst int) *deviceLimiters {
	return &deviceLimiters{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

// allow reports whether one more reading from the device fits its
// budget. Limiters are created lazily on first contact; the bucket
// starts full so backlog replays after an outage get the burst.
func (d *deviceLimiters) allow(deviceID string) bool {
	d.mu.Lock()
	lim, ok := d.limiters[deviceID]
	if !ok {
		lim = rate.NewLimiter(d.rate, d.burst)
		d.limiters[deviceID] = lim
	}
	d.mu.Unlock()
	return lim.Allow()
}

// forget drops a device's limiter, used when a device is deleted.
func (d *deviceLimiters) forget(deviceID string) {
	d.mu.Lock()
	delete(d.limiters, deviceID)
	d.mu.Unlock()
}
