package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "axb",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "axb",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"method", "path"},
	)

	admissionDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "axb",
			Subsystem: "admission",
			Name:      "decisions_total",
			Help:      "Admission outcomes by entity and reason",
		},
		[]string{"entity", "outcome", "reason"},
	)
)

func recordDecision(entity string, accepted bool, reason string) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	admissionDecisions.WithLabelValues(entity, outcome, reason).Inc()
}
