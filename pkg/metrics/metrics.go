package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service. All
// recording methods are nil-receiver safe, so instrumented code never
// needs to check whether metrics are enabled.
type Metrics struct {
	// HTTP traffic by method, route and status class
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Notifications dropped by the hub, by reason
	NotificationsDropped *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry. Call
// it once at startup.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_system_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitor_system_http_request_duration_seconds",
			Help:    "HTTP request duration by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),

		NotificationsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_system_notifications_dropped_total",
			Help: "Notifications dropped because a client or the queue fell behind",
		}, []string{"reason"}), // reason: "slow_client", "queue_full"
	}
}

// ObserveHTTPRequest records one completed request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncrementNotificationsDropped records one dropped notification.
func (m *Metrics) IncrementNotificationsDropped(reason string) {
	if m != nil {
		m.NotificationsDropped.WithLabelValues(reason).Inc()
	}
}
