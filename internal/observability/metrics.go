package observability

import "github.com/prometheus/client_golang/prometheus"

// Event outcomes recorded by EventsTotal.
const (
	OutcomeRecorded      = "recorded"
	OutcomeInvalidJSON   = "invalid_json"
	OutcomeMissingFields = "missing_fields"
	OutcomeTooLarge      = "too_large"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "audit_active_requests",
		Help: "Current in-flight requests",
	})

	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_events_total",
		Help: "Audit submissions by outcome",
	}, []string{"outcome"})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		EventsTotal,
	)
}
