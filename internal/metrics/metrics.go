// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the recommendation service:
// - HTTP endpoint latency and throughput
// - Per-tender scoring performance and tier distribution
// - Learning adapter activity
// - Badger store operations

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Scoring Metrics
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_duration_seconds",
			Help:    "Duration of a single profile/tender scoring in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TendersScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tenders_scored_total",
			Help: "Total number of profile/tender pairs scored",
		},
	)

	TierAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_assignments_total",
			Help: "Total number of tier assignments by relevance tier",
		},
		[]string{"tier"},
	)

	TendersExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tenders_excluded_total",
			Help: "Total number of tenders forced to zero by exclusion lists",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation pipeline runs",
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of a full recommendation pipeline run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidate tenders per recommendation run",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
	)

	// Learning Metrics
	LearningEventsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_events_applied_total",
			Help: "Total number of interaction events applied to weight vectors",
		},
	)

	LearningEventsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_events_skipped_total",
			Help: "Total number of malformed interaction events dropped",
		},
	)

	LearningBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "learning_batch_duration_seconds",
			Help:    "Duration of one learning batch in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of Badger store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of Badger store operation errors",
		},
		[]string{"store", "operation"},
	)

	// Validation Metrics
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of request payload validation failures",
		},
		[]string{"entity"},
	)
)

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordScoring records one profile/tender scoring pass.
func RecordScoring(tier string, excluded bool, duration time.Duration) {
	TendersScored.Inc()
	ScoringDuration.Observe(duration.Seconds())
	TierAssignments.WithLabelValues(tier).Inc()
	if excluded {
		TendersExcluded.Inc()
	}
}

// RecordRecommendation records one full recommendation pipeline run.
func RecordRecommendation(candidates int, duration time.Duration) {
	RecommendationRequests.Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationCandidates.Observe(float64(candidates))
}

// RecordLearningBatch records one learning batch outcome.
func RecordLearningBatch(applied, skipped int, duration time.Duration) {
	LearningEventsApplied.Add(float64(applied))
	LearningEventsSkipped.Add(float64(skipped))
	LearningBatchDuration.Observe(duration.Seconds())
}

// RecordStoreOperation records one Badger store operation.
func RecordStoreOperation(store, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(store, operation).Inc()
	}
}
