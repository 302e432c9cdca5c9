// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "API request duration in seconds",
			// Large report pulls take minutes
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Metrics
	UpstreamPageRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_page_requests_total",
			Help: "Total number of upstream report page fetches",
		},
		[]string{"report", "result"}, // result: "success", "error"
	)

	UpstreamPageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_page_duration_seconds",
			Help:    "Duration of upstream report page fetches",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"report"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total number of page fetch retries after a failed attempt",
		},
		[]string{"report"},
	)

	UpstreamPayloadShapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_payload_shapes_total",
			Help: "Upstream payload layouts seen by the normalizer",
		},
		[]string{"report", "shape"}, // array, wrapped, pseudo_array, keyed, unknown
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "End-to-end duration of report aggregations",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"report", "strategy"}, // strategy: "single_page", "cursor", "time_slice"
	)

	AggregationRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_records",
			Help:    "Number of unique records returned per aggregation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
	)

	AggregationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_errors_total",
			Help: "Total number of aggregations that failed",
		},
		[]string{"report"},
	)

	PaginationAnomalies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_pagination_anomalies_total",
			Help: "Pagination anomalies recovered by the aggregator",
		},
		[]string{"report", "kind"}, // kind: "stuck_cursor", "cursor_cycle", "stagnation"
	)

	TimeSlices = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_time_slices_total",
			Help: "Total number of time-slice windows fetched by the fallback",
		},
		[]string{"report"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected", "canceled"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "token_source"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamPage records one upstream page fetch.
func RecordUpstreamPage(report string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	UpstreamPageRequests.WithLabelValues(report, result).Inc()
	UpstreamPageDuration.WithLabelValues(report).Observe(duration.Seconds())
}

// RecordRetry records a retry after a failed page fetch.
func RecordRetry(report string) {
	UpstreamRetries.WithLabelValues(report).Inc()
}

// RecordPayloadShape records which layout the normalizer matched.
func RecordPayloadShape(report, shape string) {
	UpstreamPayloadShapes.WithLabelValues(report, shape).Inc()
}

// RecordAggregation records a finished aggregation.
func RecordAggregation(report, strategy string, duration time.Duration, records int, err error) {
	if err != nil {
		AggregationErrors.WithLabelValues(report).Inc()
		return
	}
	AggregationDuration.WithLabelValues(report, strategy).Observe(duration.Seconds())
	AggregationRecords.Observe(float64(records))
}

// RecordPaginationAnomaly records a stuck cursor, cursor cycle or stagnation.
func RecordPaginationAnomaly(report, kind string) {
	PaginationAnomalies.WithLabelValues(report, kind).Inc()
}

// RecordTimeSlice records one fetched time-slice window.
func RecordTimeSlice(report string) {
	TimeSlices.WithLabelValues(report).Inc()
}
