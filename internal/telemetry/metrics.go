// Package telemetry holds the Prometheus collectors exported on the debug
// endpoint.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maintenance"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route template, method and status class.",
	}, []string{"route", "method", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "HTTP handler latency by route template and method.",
		Buckets: []float64{
			0.001, 0.005,
			0.01, 0.05,
			0.1, 0.5,
			1, 5,
		},
	}, []string{"route", "method"})

	requestEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "requests",
		Name:      "events_total",
		Help:      "Maintenance request lifecycle events.",
	}, []string{"event"})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "sent_total",
		Help:      "Outbound notifications by channel and result.",
	}, []string{"channel", "result"})
)

// Lifecycle event names.
const (
	EventCreated   = "created"
	EventAssigned  = "assigned"
	EventCompleted = "completed"
	EventNoted     = "noted"
	EventClosed    = "closed"
)

func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, statusClass(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func RecordRequestEvent(event string) {
	requestEvents.WithLabelValues(event).Inc()
}

// RecordNotification counts one delivery attempt. channel is "sms" or "email".
func RecordNotification(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	notifications.WithLabelValues(channel, result).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
