// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/reports/{kind}", "200"))
	RecordAPIRequest("GET", "/api/v1/reports/{kind}", "200", 150*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/reports/{kind}", "200"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("expected one active request, got %v", got)
	}
	TrackActiveRequest(false)
}

func TestRecordUpstreamPage(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("HTTP 503"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := UpstreamPageRequests.WithLabelValues("agent-status", tt.result)
			before := testutil.ToFloat64(c)
			RecordUpstreamPage("agent-status", time.Second, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("expected %s counter +1, got %v", tt.result, got)
			}
		})
	}
}

func TestRecordAggregation(t *testing.T) {
	errCounter := AggregationErrors.WithLabelValues("campaign-activity")
	before := testutil.ToFloat64(errCounter)

	RecordAggregation("campaign-activity", "cursor", 2*time.Second, 1200, nil)
	RecordAggregation("campaign-activity", "cursor", time.Second, 0, errors.New("exhausted"))

	if got := testutil.ToFloat64(errCounter) - before; got != 1 {
		t.Errorf("expected one aggregation error, got %v", got)
	}
}

func TestRecordPaginationAnomaly(t *testing.T) {
	c := PaginationAnomalies.WithLabelValues("call-detail-records", "stuck_cursor")
	before := testutil.ToFloat64(c)
	RecordPaginationAnomaly("call-detail-records", "stuck_cursor")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("expected anomaly counter +1, got %v", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordRetry("inbound-queue-calls")
			RecordPayloadShape("inbound-queue-calls", "wrapped")
			RecordTimeSlice("inbound-queue-calls")
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(TimeSlices.WithLabelValues("inbound-queue-calls")); got < 20 {
		t.Errorf("expected at least 20 time slices, got %v", got)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/metrics", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
