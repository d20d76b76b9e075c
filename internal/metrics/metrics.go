// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Telemetry ingest (accepted, duplicate, rejected)
// - Database query performance (DuckDB)
// - Chart plan construction
// - API endpoint latency and throughput
// - Chart plan cache efficiency
// - WebSocket connections

var (
	// Ingest Metrics
	IngestAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_readings_accepted_total",
			Help: "Total number of telemetry readings stored",
		},
	)

	IngestDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_readings_duplicate_total",
			Help: "Total number of replayed readings dropped by the idempotency key",
		},
	)

	IngestRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_readings_rejected_total",
			Help: "Total number of rejected telemetry posts",
		},
		[]string{"reason"}, // "validation", "auth", "rate_limit", "body_too_large"
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// Chart Metrics
	ChartPlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_plan_duration_seconds",
			Help:    "Time spent building chart draw plans",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"range"},
	)

	ChartCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_hits_total",
			Help: "Total number of chart plan cache hits",
		},
	)

	ChartCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_misses_total",
			Help: "Total number of chart plan cache misses",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Retention Metrics
	RetentionPrunedReadings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retention_pruned_readings_total",
			Help: "Total number of readings removed by the retention pruner",
		},
	)

	RetentionPruneRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retention_prune_runs_total",
			Help: "Total number of retention prune cycles",
		},
		[]string{"result"}, // "ok", "error"
	)

	// WebSocket Metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_active_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages broadcast to clients",
		},
	)

	WebSocketMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Total number of WebSocket messages dropped due to slow clients",
		},
	)
)

// RecordDBQuery records the duration and outcome of a database query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request with its response code.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordIngest records the outcome of one telemetry post.
func RecordIngest(duplicate bool) {
	if duplicate {
		IngestDuplicates.Inc()
	} else {
		IngestAccepted.Inc()
	}
}

// RecordChartPlan records the time spent building a chart plan.
func RecordChartPlan(rangeKey string, duration time.Duration) {
	ChartPlanDuration.WithLabelValues(rangeKey).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
