// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/models"
	"github.com/tomtom215/callboard/internal/validation"
)

// ReportResult is the data payload of a report response.
type ReportResult struct {
	Report     models.ReportKind `json:"report"`
	Records    []models.Record   `json:"records"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
	Strategy   string            `json:"strategy"`
	Pages      int               `json:"pages"`
}

// ListReports returns the supported report kinds.
//
// @Summary List report kinds
// @Tags Reports
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.ReportDescriptor}
// @Router /reports [get]
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(models.ReportDescriptors())
}

// GetReport aggregates one report for a tenant.
//
// @Summary Aggregate a report
// @Description Fetches up to limit unique records (clamped to 10000), walking upstream pagination as needed.
// @Tags Reports
// @Produce json
// @Param kind path string true "Report kind"
// @Param tenant query string false "Tenant ID (or X-Tenant-ID header)"
// @Param start query string false "Range start, epoch seconds or RFC3339"
// @Param end query string false "Range end, epoch seconds or RFC3339"
// @Param limit query int false "Unique records wanted"
// @Param cursor query string false "Resume cursor from a previous response"
// @Success 200 {object} APIResponse{data=ReportResult}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Failure 504 {object} APIResponse
// @Router /reports/{kind} [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	kind := chi.URLParam(r, "kind")
	desc, ok := models.LookupReport(kind)
	if !ok {
		rw.NotFound("Unknown report: " + kind)
		return
	}

	q, err := parseReportQuery(r, h.tenantHeader)
	if err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			apiErr := verr.ToAPIError()
			rw.ValidationError(apiErr.Message, apiErr.Details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	ctx := logging.ContextWithTenant(r.Context(), q.Tenant)
	if h.aggregateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.aggregateTimeout)
		defer cancel()
	}
	rw.r = r.WithContext(ctx)

	result, err := h.aggregator.Aggregate(ctx, q.fetchRequest(desc))
	if err != nil {
		writeAggregateError(rw, err)
		return
	}

	var next *string
	if result.NextCursor != "" {
		next = &result.NextCursor
	}
	records := result.Records
	if records == nil {
		records = []models.Record{}
	}

	rw.SuccessWithPagination(&ReportResult{
		Report:     desc.Kind,
		Records:    records,
		HasMore:    result.HasMore,
		NextCursor: next,
		Strategy:   result.Strategy,
		Pages:      result.Pages,
	}, &PaginationMeta{
		Count:      len(records),
		Limit:      h.aggregator.ClampLimit(q.Limit),
		HasMore:    result.HasMore,
		NextCursor: next,
	})
}
