// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/tomtom215/callboard/docs"
	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/models"
)

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeAggregator{fn: staticResult(&models.Result{})}, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/agent-status?tenant=acme", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	req.Header.Set("X-Forwarded-Proto", "https")
	rec, env := serve(t, router, req)

	if rec.Header().Get("X-Request-ID") != "trace-123" || env.Meta.RequestID != "trace-123" {
		t.Errorf("request id header %q meta %q", rec.Header().Get("X-Request-ID"), env.Meta.RequestID)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if !strings.HasPrefix(rec.Header().Get("Strict-Transport-Security"), "max-age=") {
		t.Error("expected HSTS behind TLS proxy")
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeAggregator{}, nil, 0)

	rec, env := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil))
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status %d error %+v", rec.Code, env.Error)
	}

	rec, env = serve(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/reports/agent-status", nil))
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("POST: status %d error %+v", rec.Code, env.Error)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeAggregator{}, nil, 0)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Go runtime metrics in exposition")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	h := NewHandler(HandlerConfig{Aggregator: &fakeAggregator{}})
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	router := NewRouter(h, NewChiMiddleware(cfg)).SetupChi()

	var last *httptest.ResponseRecorder
	var env envelope
	for i := 0; i < 3; i++ {
		last, env = serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// Health endpoints have their own, larger budget.
	rec, _ := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	sec := &config.SecurityConfig{
		CORSOrigins:       []string{"https://dash.example"},
		RateLimitReqs:     10,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	}
	mw := NewChiMiddleware(ChiMiddlewareConfigFrom(sec, "X-Org"))
	router := NewRouter(NewHandler(HandlerConfig{Aggregator: &fakeAggregator{}}), mw).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reports/agent-status", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "X-Org")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if !strings.Contains(strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), "x-org") {
		t.Errorf("Allow-Headers = %q, want custom tenant header", rec.Header().Get("Access-Control-Allow-Headers"))
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/reports/agent-status", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin must not be allowed")
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeAggregator{}, nil, 0)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/reports/{kind}") {
		t.Error("expected report route in OpenAPI document")
	}
}
