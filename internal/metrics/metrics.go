// Package metrics holds Prometheus instruments that are used across
// staffdesk.  All collectors are registered with the global registry; the
// CLI's --metrics-file flag writes them out for a textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WriteFile writes every registered metric to path in the text exposition
// format.  The file is replaced atomically.
func WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdesk_form_submissions_total",
			Help: "Form submit attempts by form and outcome (invalid, busy, success, failure, dismissed).",
		}, []string{"form", "outcome"})

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdesk_form_validation_errors_total",
			Help: "Field-level validation errors by form and field.",
		}, []string{"form", "field"})

	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdesk_api_requests_total",
			Help: "Backend API requests by path and HTTP status (0 for transport failures).",
		}, []string{"path", "status"})

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staffdesk_api_request_duration_seconds",
			Help:    "Backend API round-trip latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationErrorsTotal,
		APIRequestsTotal,
		APIRequestDuration,
	)
}
