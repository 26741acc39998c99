package metrics

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream metrics are managed by the MetricsManager singleton
// These variables are nil until the first recorded sample when metrics are enabled
var (
	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec
	payoutAttemptsTotal     *prometheus.CounterVec
	payoutAmountMinorUnits  *prometheus.CounterVec
	notificationsSentTotal  *prometheus.CounterVec
)

// initializeUpstreamMetrics initializes upstream metrics if they haven't been initialized yet
func initializeUpstreamMetrics() {
	if upstreamRequestsTotal != nil {
		return // Already initialized
	}

	// Outbound HTTP metrics, per upstream target (content_api, paystack, onesignal)
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests issued to upstream services",
		},
		[]string{"target", "method", "outcome"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Time spent waiting on upstream services",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"target", "method"},
	)

	// Payout metrics
	payoutAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_attempts_total",
			Help: "Total number of payout attempts",
		},
		[]string{"outcome"}, // "succeeded", "validation", "recipient_creation", "transfer"
	)

	payoutAmountMinorUnits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_amount_minor_units_total",
			Help: "Total amount transferred in minor currency units",
		},
		[]string{"mode"}, // "bank", "mobile_money", "reused"
	)

	// Notification metrics
	notificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of push notifications dispatched",
		},
		[]string{"audience", "outcome"},
	)

	// Register with the singleton registry
	mm := GetInstance()
	mm.registry.MustRegister(
		upstreamRequestsTotal,
		upstreamRequestDuration,
		payoutAttemptsTotal,
		payoutAmountMinorUnits,
		notificationsSentTotal,
	)
}

// RecordUpstreamRequest records metrics for one outbound request
func RecordUpstreamRequest(target, method, outcome string, duration time.Duration) {
	// Check if business metrics are enabled
	if os.Getenv("ENABLE_BUSINESS_METRICS") != "true" {
		return
	}

	// Initialize metrics if needed
	initializeUpstreamMetrics()

	upstreamRequestsTotal.WithLabelValues(target, method, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(target, method).Observe(duration.Seconds())
}

// RecordPayoutAttempt records the outcome of one payout run
func RecordPayoutAttempt(outcome string) {
	// Check if business metrics are enabled
	if os.Getenv("ENABLE_BUSINESS_METRICS") != "true" {
		return
	}

	// Initialize metrics if needed
	initializeUpstreamMetrics()

	payoutAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordPayoutAmount records the amount moved by a successful transfer
func RecordPayoutAmount(mode string, minorUnits int64) {
	// Check if business metrics are enabled
	if os.Getenv("ENABLE_BUSINESS_METRICS") != "true" {
		return
	}

	// Initialize metrics if needed
	initializeUpstreamMetrics()

	payoutAmountMinorUnits.WithLabelValues(mode).Add(float64(minorUnits))
}

// RecordNotification records a push notification dispatch
func RecordNotification(audience, outcome string) {
	// Check if business metrics are enabled
	if os.Getenv("ENABLE_BUSINESS_METRICS") != "true" {
		return
	}

	// Initialize metrics if needed
	initializeUpstreamMetrics()

	notificationsSentTotal.WithLabelValues(audience, outcome).Inc()
}
