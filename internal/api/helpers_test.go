// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/callboard/internal/models"
)

// fakeAggregator records requests and answers through fn.
type fakeAggregator struct {
	mu   sync.Mutex
	reqs []models.FetchRequest
	fn   func(ctx context.Context, req models.FetchRequest) (*models.Result, error)
}

func (f *fakeAggregator) Aggregate(ctx context.Context, req models.FetchRequest) (*models.Result, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	return f.fn(ctx, req)
}

func (f *fakeAggregator) ClampLimit(limit int) int {
	if limit > 10000 {
		return 10000
	}
	return limit
}

func (f *fakeAggregator) last(t *testing.T) models.FetchRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		t.Fatal("aggregator was not called")
	}
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeAggregator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

type fakeReadiness struct{ healthy bool }

func (f fakeReadiness) Healthy() bool { return f.healthy }

func staticResult(res *models.Result) func(context.Context, models.FetchRequest) (*models.Result, error) {
	return func(context.Context, models.FetchRequest) (*models.Result, error) {
		return res, nil
	}
}

func newTestRouter(agg ReportAggregator, ready ReadinessChecker, timeout time.Duration) http.Handler {
	h := NewHandler(HandlerConfig{
		Aggregator:       agg,
		Readiness:        ready,
		AggregateTimeout: timeout,
		Version:          "test",
	})
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(h, NewChiMiddleware(cfg)).SetupChi()
}

// envelope mirrors APIResponse for decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *struct {
		RequestID  string                 `json:"request_id"`
		Pagination map[string]interface{} `json:"pagination"`
	} `json:"meta"`
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}
