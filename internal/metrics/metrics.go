package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shareit"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by service, route and status.",
		},
		[]string{"service", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by service and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "route"},
	)

	bookingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events by type.",
		},
		[]string{"type"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter.",
		},
		[]string{"service"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingEvents, rateLimited)
	})
}

// ObserveHTTP records one finished request. route is the matched pattern, not the raw path.
func ObserveHTTP(service, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(service, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(service, route).Observe(seconds)
}

func IncBookingEvent(eventType string) {
	bookingEvents.WithLabelValues(eventType).Inc()
}

func IncRateLimited(service string) {
	rateLimited.WithLabelValues(service).Inc()
}
