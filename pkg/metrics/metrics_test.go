package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest("GET", "/health", 200, 5*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/health", 200, 7*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/students/entry", 201, time.Millisecond)

	if v := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")); v != 2 {
		t.Errorf("expected 2 GET /health requests, got %v", v)
	}
	if v := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/v1/students/entry", "201")); v != 1 {
		t.Errorf("expected 1 entry request, got %v", v)
	}
}

func TestMetrics_IncrementNotificationsDropped(t *testing.T) {
	var m *Metrics

	// nil receiver: metrics disabled, must not panic
	m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	m.IncrementNotificationsDropped("slow_client")
}
