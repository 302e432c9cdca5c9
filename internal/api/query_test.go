// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"errors"
	"testing"

	"github.com/tomtom215/callboard/internal/models"
)

func TestParseTimeParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"1700000000", 1700000000, false},
		{"2024-03-01T00:00:00Z", 1709251200, false},
		{"2024-03-01T02:00:00+02:00", 1709251200, false},
		{"2024-03-01", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseTimeParam("start", tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimeParam(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeParam(%q) = %d, want %d", tt.raw, got, tt.want)
		}
		var perr *paramError
		if tt.wantErr && !errors.As(err, &perr) {
			t.Errorf("parseTimeParam(%q) error type %T", tt.raw, err)
		}
	}
}

func TestReportQuery_FetchRequest(t *testing.T) {
	t.Parallel()

	desc, _ := models.LookupReport("agent-status")

	q := &ReportQuery{Tenant: "acme", Start: 100, End: 200, Limit: 5, Cursor: "c"}
	req := q.fetchRequest(desc)
	if req.Range == nil || req.Range.Start != 100 || req.Range.End != 200 {
		t.Errorf("range = %+v", req.Range)
	}
	if req.Report != desc || req.Tenant != "acme" || req.Limit != 5 || req.Cursor != "c" {
		t.Errorf("request = %+v", req)
	}

	if (&ReportQuery{Tenant: "acme"}).fetchRequest(desc).Range != nil {
		t.Error("range should be nil without bounds")
	}
}
