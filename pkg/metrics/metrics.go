package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keephy_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keephy_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keephy_form_submissions_total",
			Help: "Total number of recorded form submissions",
		},
		[]string{"module_name"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keephy_notifications_total",
			Help: "Outbound emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	BillingCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keephy_billing_calls_total",
			Help: "Payment processor calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keephy_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	OTPCleanupCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keephy_otp_cleanup_cleared_total",
			Help: "Expired one-time codes cleared by the background job",
		},
	)
)

// Outcome converts an error into the outcome label value
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
