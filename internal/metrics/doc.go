// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package metrics provides Prometheus metrics for Callboard.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: requests by method, endpoint, status_code (counter)
  - api_request_duration_seconds: request latency by method, endpoint (histogram)
  - api_active_requests: in-flight requests (gauge)

Upstream Metrics:
  - upstream_page_requests_total: page fetches by report and result (counter)
  - upstream_page_duration_seconds: page fetch latency by report (histogram)
  - upstream_retries_total: retry attempts by report (counter)
  - upstream_payload_shapes_total: normalized payload layouts by report and shape (counter)

Aggregation Metrics:
  - aggregation_duration_seconds: end-to-end aggregation time by report and strategy (histogram)
  - aggregation_records: records returned per aggregation (histogram)
  - aggregation_pagination_anomalies_total: stuck cursors, cursor cycles and stagnation (counter)
  - aggregation_time_slices_total: time-slice windows fetched (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: requests by result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Credential Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total, cache_entries

# Usage

	start := time.Now()
	body, err := client.FetchPage(ctx, req)
	metrics.RecordUpstreamPage(req.Report.Kind.String(), time.Since(start), err)
*/
package metrics
