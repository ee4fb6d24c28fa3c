// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package metrics holds the Prometheus collectors for danmakuview.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analyzer call outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
	OutcomeTimeout   = "timeout"
)

var (
	// Viewer HTTP surface
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "danmakuview_http_requests_total",
			Help: "Total number of HTTP requests served by the viewer",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "danmakuview_http_request_duration_seconds",
			Help:    "Viewer HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "danmakuview_http_active_requests",
			Help: "Number of in-flight viewer HTTP requests",
		},
	)

	// Analyzer backend calls
	AnalyzerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "danmakuview_analyzer_requests_total",
			Help: "Analyzer API calls by endpoint and outcome (accepted, rejected, transport_error, timeout)",
		},
		[]string{"endpoint", "outcome"},
	)

	AnalyzerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "danmakuview_analyzer_request_duration_seconds",
			Help: "Analyzer API call duration in seconds",
			// fetch can take minutes while the analyzer crawls search results
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300, 900, 3000},
		},
		[]string{"endpoint"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "danmakuview_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "danmakuview_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "danmakuview_circuit_breaker_consecutive_failures",
			Help: "Current consecutive failures seen by the circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "danmakuview_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Notifications
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "danmakuview_notifications_total",
			Help: "Notifications raised by type",
		},
		[]string{"type"},
	)

	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "danmakuview_notifications_dropped_total",
			Help: "Notifications dropped because the broadcast queue was full",
		},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "danmakuview_websocket_connections",
			Help: "Connected notification websocket clients",
		},
	)
)

// RecordAPIRequest records a served viewer request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAnalyzerCall records one analyzer API call.
func RecordAnalyzerCall(endpoint, outcome string, duration time.Duration) {
	AnalyzerRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	AnalyzerRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
