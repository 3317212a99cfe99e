package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for EventsTotal
const (
	OutcomeForwarded = "forwarded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

var (
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixel_webhook_events_total",
			Help: "Total number of inbound events by event name and outcome",
		},
		[]string{"event_name", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixel_webhook_upstream_duration_seconds",
			Help:    "Duration of Conversions API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixel_webhook_upstream_errors_total",
			Help: "Total number of failed Conversions API calls by reason",
		},
		[]string{"reason"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pixel_webhook_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	VerificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixel_webhook_verification_attempts_total",
			Help: "Total number of webhook verification handshakes by result",
		},
		[]string{"result"},
	)
)
