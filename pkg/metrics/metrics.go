package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outbound call results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_submissions_total",
			Help: "Total number of submissions by entry type and outcome",
		},
		[]string{"entry_type", "outcome"},
	)

	OutboundRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_outbound_requests_total",
			Help: "Total number of calls to third-party systems",
		},
		[]string{"system", "result"},
	)

	OutboundRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brief_outbound_request_duration_seconds",
			Help:    "Duration of calls to third-party systems in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"system"},
	)
)

// ObserveOutbound records one third-party call that started at start.
func ObserveOutbound(system, result string, start time.Time) {
	OutboundRequestsTotal.WithLabelValues(system, result).Inc()
	if result != ResultSkipped {
		OutboundRequestDuration.WithLabelValues(system).Observe(time.Since(start).Seconds())
	}
}
