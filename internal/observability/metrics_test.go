package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordRequestAndError(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/community-posts/:id", "PUT", 403, 5*time.Millisecond)
	m.RecordRequest("/api/community-posts/:id", "PUT", 403, 5*time.Millisecond)
	m.RecordError("/api/community-posts/:id", "PUT", "FORBIDDEN")

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/community-posts/:id", "PUT", "403")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues("/api/community-posts/:id", "PUT", "FORBIDDEN")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
}

func TestMetrics_Relay(t *testing.T) {
	m := NewMetrics()

	m.RelayConnected(1)
	m.RelayConnected(1)
	m.RelayConnected(-1)
	m.RelayBroadcast()
	m.RelayDelivered(3, 1)

	if got := testutil.ToFloat64(m.relayConns); got != 1 {
		t.Errorf("expected 1 open connection, got %v", got)
	}
	if got := testutil.ToFloat64(m.relayDelivered); got != 3 {
		t.Errorf("expected 3 delivered, got %v", got)
	}
	if got := testutil.ToFloat64(m.relayDropped); got != 1 {
		t.Errorf("expected 1 dropped, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RelayConnected(1)
	m.RelayBroadcast()
	m.RelayDelivered(1, 1)
}
