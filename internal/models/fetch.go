// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package models

import "time"

// UpstreamPageSize is the hard per-response cap enforced by the reporting API.
const UpstreamPageSize = 500

// TimeRange is a half-open interval [Start, End) in epoch seconds.
type TimeRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Duration returns the length of the range.
func (tr TimeRange) Duration() time.Duration {
	return time.Duration(tr.End-tr.Start) * time.Second
}

// Valid reports whether the range is non-empty.
func (tr TimeRange) Valid() bool {
	return tr.End > tr.Start
}

// FetchRequest is the caller input to the aggregator.
type FetchRequest struct {
	Report *ReportDescriptor
	Tenant string

	// Range is optional; nil means no time bounds are sent upstream.
	Range *TimeRange

	// Limit is the number of unique records wanted. Zero means a single
	// upstream page with no page-size hint.
	Limit int

	// Cursor resumes a previous aggregation.
	Cursor string
}

// PageRequest is the input for one upstream call.
type PageRequest struct {
	Report *ReportDescriptor
	Tenant string
	Range  *TimeRange

	// Limit is a page-size hint; zero omits it.
	Limit  int
	Cursor string
}

// Page is one normalized upstream response.
type Page struct {
	Records []Record

	// RequestCursor is the cursor that produced this page (empty for the first).
	RequestCursor string

	// NextCursor is empty when the upstream signalled the last page.
	NextCursor string
}

// Result is the aggregator output.
type Result struct {
	Records    []Record `json:"records"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor,omitempty"`

	// Strategy records which fetch path produced the result.
	Strategy string `json:"strategy"`

	// Pages is the number of upstream responses consumed.
	Pages int `json:"pages"`
}
