// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

/*
Package auth provides the two authentication paths of the AirBuddy server.

Device authentication protects the telemetry ingest endpoint. Sensors
send their identity in the X-Device-ID header and their key in
X-API-Key. Keys are stored as SHA-256 hex digests and compared in
constant time; a revoked device fails auth without revealing whether
the key was otherwise correct.

Admin authentication protects device management and dashboard APIs.
The admin logs in with a bcrypt-checked password and receives an
HS256-signed JWT valid for the configured session timeout. When
auth_mode is "none" (development only), the admin middleware passes
every request through.
*/
package auth
