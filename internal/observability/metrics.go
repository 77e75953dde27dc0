// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsIssued counts OTP/token pairs issued by action.
	VerificationsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylmou_verifications_issued_total",
		Help: "Total number of OTP and token pairs issued",
	}, []string{"action"})

	// VerificationAttempts counts verify calls by action and outcome.
	VerificationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylmou_verification_attempts_total",
		Help: "Total number of OTP verification attempts",
	}, []string{"action", "outcome"})

	// FanoutSubWrites counts coordinator sub-writes by branch and outcome.
	FanoutSubWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylmou_fanout_sub_writes_total",
		Help: "Total number of fan-out sub-writes",
	}, []string{"branch", "outcome"})

	// FanoutDuration records the latency of whole coordinator operations.
	FanoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stylmou_fanout_duration_seconds",
		Help:    "Duration of fan-out write operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stylmou_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts cache-aside lookups by outcome (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylmou_cache_lookups_total",
		Help: "Total number of cache-aside lookups",
	}, []string{"outcome"})
)

// Outcome returns the metric label for err.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackFanout returns a function that records the duration and outcome of a coordinator operation.
func TrackFanout(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		FanoutDuration.WithLabelValues(operation, Outcome(err)).Observe(time.Since(start).Seconds())
	}
}
