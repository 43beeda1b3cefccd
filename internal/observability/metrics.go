package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus collectors for the HTTP API and the relay.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	errors          *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	relayConns      prometheus.Gauge
	relayDelivered  prometheus.Counter
	relayDropped    prometheus.Counter
	relayBroadcasts prometheus.Counter
}

// NewMetrics registers every collector on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "HTTP error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		relayConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_connections",
			Help: "Open relay websocket connections.",
		}),
		relayDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_messages_delivered_total",
			Help: "Relay messages queued to recipients.",
		}),
		relayDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_messages_dropped_total",
			Help: "Relay messages dropped because a recipient queue was full.",
		}),
		relayBroadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_broadcasts_total",
			Help: "Broadcast frames accepted from clients.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.errors, m.latency,
		m.relayConns, m.relayDelivered, m.relayDropped, m.relayBroadcasts,
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RelayConnected tracks a relay connection opening (+1) or closing (-1).
func (m *Metrics) RelayConnected(delta int) {
	if m == nil {
		return
	}
	m.relayConns.Add(float64(delta))
}

// RelayBroadcast counts an accepted broadcast frame.
func (m *Metrics) RelayBroadcast() {
	if m == nil {
		return
	}
	m.relayBroadcasts.Inc()
}

// RelayDelivered counts queued and dropped deliveries.
func (m *Metrics) RelayDelivered(delivered, dropped int) {
	if m == nil {
		return
	}
	m.relayDelivered.Add(float64(delivered))
	m.relayDropped.Add(float64(dropped))
}
