// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/callboard/internal/models"
	"github.com/tomtom215/callboard/internal/validation"
)

// ReportQuery holds the parsed parameters of a report request.
type ReportQuery struct {
	Tenant string `query:"tenant" validate:"required,tenant"`
	Start  int64  `query:"start" validate:"required_with=End,omitempty,gt=0"`
	End    int64  `query:"end" validate:"required_with=Start,omitempty,gtfield=Start"`
	Limit  int    `query:"limit" validate:"gte=0"`
	Cursor string `query:"cursor" validate:"omitempty,cursor"`
}

// paramError is a parameter that could not be parsed at all.
type paramError struct {
	param string
	value string
	want  string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be %s, got %q", e.param, e.want, e.value)
}

// parseReportQuery reads and validates report parameters. A malformed value
// returns *paramError; a well-formed but invalid one returns
// *validation.RequestValidationError.
func parseReportQuery(r *http.Request, tenantHeader string) (*ReportQuery, error) {
	values := r.URL.Query()

	q := &ReportQuery{
		Tenant: strings.TrimSpace(values.Get("tenant")),
		Cursor: values.Get("cursor"),
	}
	if q.Tenant == "" {
		q.Tenant = strings.TrimSpace(r.Header.Get(tenantHeader))
	}

	var err error
	if q.Start, err = parseTimeParam("start", values.Get("start")); err != nil {
		return nil, err
	}
	if q.End, err = parseTimeParam("end", values.Get("end")); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, &paramError{param: "limit", value: raw, want: "an integer"}
		}
		q.Limit = n
	}

	if verr := validation.ValidateStruct(q); verr != nil {
		return nil, verr
	}
	return q, nil
}

// parseTimeParam accepts epoch seconds or an RFC3339 timestamp. Empty
// yields zero.
func parseTimeParam(name, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Unix(), nil
	}
	return 0, &paramError{param: name, value: raw, want: "epoch seconds or RFC3339"}
}

// fetchRequest converts the query into an aggregator request.
func (q *ReportQuery) fetchRequest(desc *models.ReportDescriptor) models.FetchRequest {
	req := models.FetchRequest{
		Report: desc,
		Tenant: q.Tenant,
		Limit:  q.Limit,
		Cursor: q.Cursor,
	}
	if q.Start != 0 && q.End != 0 {
		req.Range = &models.TimeRange{Start: q.Start, End: q.End}
	}
	return req
}
