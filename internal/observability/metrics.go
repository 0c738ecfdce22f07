// Package observability provides Prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simonev_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "simonev_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simonev_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simonev_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationsDelivered counts realtime notification deliveries by channel.
	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simonev_notifications_delivered_total",
		Help: "Total number of notifications delivered by channel",
	}, []string{"channel"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// ConnectionMetrics tracks WebSocket connection counts and events.
type ConnectionMetrics struct{}

// NewConnectionMetrics returns a new ConnectionMetrics instance.
func NewConnectionMetrics() *ConnectionMetrics {
	return &ConnectionMetrics{}
}

// Connected increments the active connection gauge.
func (*ConnectionMetrics) Connected() {
	WebSocketConnectionsTotal.Inc()
	WebSocketEventsTotal.WithLabelValues("connect").Inc()
}

// Disconnected decrements the active connection gauge.
func (*ConnectionMetrics) Disconnected() {
	WebSocketConnectionsTotal.Dec()
	WebSocketEventsTotal.WithLabelValues("disconnect").Inc()
}

// RecordEvent increments the WebSocket events counter for the event type.
func (*ConnectionMetrics) RecordEvent(eventType string) {
	WebSocketEventsTotal.WithLabelValues(eventType).Inc()
}
