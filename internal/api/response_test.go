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

	"github.com/goccy/go-json"

	"github.com/tomtom215/callboard/internal/logging"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestResponseWriter_SuccessWithPagination(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	cursor := "c500"
	NewResponseWriter(rec, req).SuccessWithPagination([]int{1, 2}, &PaginationMeta{
		Count: 2, Limit: 10, HasMore: true, NextCursor: &cursor,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Meta == nil || env.Meta.RequestID != "req-1" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Meta.Pagination["next_cursor"] != "c500" || env.Meta.Pagination["has_more"] != true {
		t.Errorf("pagination = %v", env.Meta.Pagination)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(rw *ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("x") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("x") }, http.StatusNotFound, ErrCodeNotFound},
		{"method", func(rw *ResponseWriter) { rw.MethodNotAllowed() }, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
		{"rate limit", func(rw *ResponseWriter) { rw.TooManyRequests("x") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("x") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("x", []string{"tenant"}) }, http.StatusBadRequest, ErrCodeValidationFailed},
		{"upstream", func(rw *ResponseWriter) { rw.ExternalServiceError("reports", nil) }, http.StatusBadGateway, ErrCodeExternalServiceFail},
		{"timeout", func(rw *ResponseWriter) { rw.GatewayTimeout("x") }, http.StatusGatewayTimeout, ErrCodeGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestResponseWriter_StatusSuccessFlag(t *testing.T) {
	t.Parallel()

	for status, success := range map[int]bool{
		http.StatusOK:                 true,
		http.StatusAccepted:           true,
		http.StatusServiceUnavailable: false,
	} {
		rec := httptest.NewRecorder()
		NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)).Status(status, map[string]bool{"ok": success})
		if env := decodeEnvelope(t, rec); env.Success != success || rec.Code != status {
			t.Errorf("Status(%d): code %d success %v", status, rec.Code, env.Success)
		}
	}
}
