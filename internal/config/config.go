// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration, loaded via Koanf with
// layered sources: built-in defaults, optional YAML file, environment
// variables (highest priority).
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Chart     ChartConfig     `koanf:"chart"`
	Retention RetentionConfig `koanf:"retention"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port 4400 nods to the 44 g/mol molar mass of CO2.
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// AuthMode is "jwt" (admin login + sessions) or "none" (development).
	AuthMode       string        `koanf:"auth_mode"`
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	AdminUsername  string        `koanf:"admin_username"`
	// AdminPassword is a bcrypt hash. A plaintext value is accepted and
	// hashed at startup for convenience in development.
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// IngestConfig holds telemetry ingestion settings.
type IngestConfig struct {
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
	// PerDeviceRate is the sustained readings-per-second budget for one
	// device; PerDeviceBurst is the token bucket depth.
	PerDeviceRate  float64 `koanf:"per_device_rate"`
	PerDeviceBurst int     `koanf:"per_device_burst"`
}

// ChartConfig holds chart layout engine defaults.
type ChartConfig struct {
	DefaultRange  string        `koanf:"default_range"`
	MaxGapSeconds int64         `koanf:"max_gap_seconds"`
	TickCount     int           `koanf:"tick_count"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
}

// RetentionConfig holds the reading retention policy.
type RetentionConfig struct {
	// Days 0 disables pruning.
	Days          int           `koanf:"days"`
	PruneInterval time.Duration `koanf:"prune_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for inconsistencies that would make
// the server misbehave at runtime. It is called after unmarshaling.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in jwt mode")
		}
		if c.Security.AdminUsername == "" || c.Security.AdminPassword == "" {
			return fmt.Errorf("security.admin_username and admin_password are required in jwt mode")
		}
	case "none":
		if c.Server.Environment == "production" {
			return fmt.Errorf("security.auth_mode none is not allowed in production")
		}
	default:
		return fmt.Errorf("security.auth_mode must be jwt or none, got %q", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive")
		}
	}

	if c.Ingest.MaxBodyBytes <= 0 {
		return fmt.Errorf("ingest.max_body_bytes must be positive")
	}
	if c.Ingest.PerDeviceRate <= 0 || c.Ingest.PerDeviceBurst <= 0 {
		return fmt.Errorf("ingest.per_device_rate and per_device_burst must be positive")
	}

	if c.Chart.MaxGapSeconds <= 0 {
		return fmt.Errorf("chart.max_gap_seconds must be positive")
	}
	if c.Chart.TickCount < 2 {
		return fmt.Errorf("chart.tick_count must be at least 2")
	}

	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative")
	}
	if c.Retention.Days > 0 && c.Retention.PruneInterval <= 0 {
		return fmt.Errorf("retention.prune_interval must be positive when retention is enabled")
	}

	return nil
}
