// Package metrics exposes the platform's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the platform records.  One instance is
// created at startup and shared through dependency injection.
type Metrics struct {
	ClaimsCreated       *prometheus.CounterVec
	StatusChanges       *prometheus.CounterVec
	ClassifierFallbacks prometheus.Counter
	SimilarityQueries   prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClaimsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reclamos",
			Name:      "claims_created_total",
			Help:      "Claims created, partitioned by resolved department.",
		}, []string{"department"}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reclamos",
			Name:      "claim_status_changes_total",
			Help:      "Claim status changes, partitioned by new status.",
		}, []string{"status"}),
		ClassifierFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reclamos",
			Name:      "classifier_fallbacks_total",
			Help:      "Claims routed to the technical secretariat because classification was unavailable or not confident.",
		}),
		SimilarityQueries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reclamos",
			Name:      "similarity_query_duration_seconds",
			Help:      "Latency of duplicate-detection queries.",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reclamos",
			Name:      "http_requests_total",
			Help:      "HTTP requests, partitioned by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reclamos",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, partitioned by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.ClaimsCreated,
		m.StatusChanges,
		m.ClassifierFallbacks,
		m.SimilarityQueries,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveHTTP records one completed HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
