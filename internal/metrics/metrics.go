// Package metrics defines the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for BookmarkOpsTotal.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	BookmarkOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_operations_total",
		Help: "Bookmark API operations by operation and outcome.",
	}, []string{"op", "outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response, by route pattern and status class.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "code"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarks_rate_limited_total",
		Help: "Requests rejected with 429 by the rate limiter.",
	})

	BookmarksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookmarks_total",
		Help: "Number of bookmarks in the database, sampled on scrape.",
	})
)

// RecordOp increments BookmarkOpsTotal for op with the given outcome.
func RecordOp(op, outcome string) {
	BookmarkOpsTotal.WithLabelValues(op, outcome).Inc()
}
