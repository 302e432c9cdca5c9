// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import (
	"testing"
	"time"

	"github.com/tomtom215/callboard/internal/models"
)

func TestSliceWindow(t *testing.T) {
	t.Parallel()

	const start = int64(1_700_000_000)
	hour := int64(3600)

	tests := []struct {
		name  string
		span  int64
		count int
	}{
		{"sixteen hours gives four windows", 16 * hour, 4},
		{"one hour still gives minimum", hour, 4},
		{"seventeen hours needs five", 17 * hour, 5},
		{"one week", 7 * 24 * hour, 42},
		{"uneven span", 10_001, 4},
		{"shorter than minimum seconds", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := models.TimeRange{Start: start, End: start + tt.span}
			windows := SliceWindow(tr, 4*time.Hour, 4)

			if len(windows) != tt.count {
				t.Fatalf("windows = %d, want %d", len(windows), tt.count)
			}
			if windows[0].Start != tr.Start {
				t.Errorf("first start = %d, want %d", windows[0].Start, tr.Start)
			}
			if windows[len(windows)-1].End != tr.End {
				t.Errorf("last end = %d, want %d", windows[len(windows)-1].End, tr.End)
			}
			for i, w := range windows {
				if !w.Valid() {
					t.Errorf("window %d is empty: %+v", i, w)
				}
				if w.Duration() > 4*time.Hour {
					t.Errorf("window %d exceeds max: %v", i, w.Duration())
				}
				if i > 0 && windows[i-1].End != w.Start {
					t.Errorf("gap between window %d and %d", i-1, i)
				}
			}
		})
	}
}

func TestSliceWindow_EqualSplit(t *testing.T) {
	t.Parallel()

	windows := SliceWindow(models.TimeRange{Start: 0, End: 16 * 3600}, 4*time.Hour, 4)
	for i, w := range windows {
		if w.Duration() != 4*time.Hour {
			t.Errorf("window %d duration = %v, want 4h", i, w.Duration())
		}
	}
}

func TestSliceWindow_EmptyRange(t *testing.T) {
	t.Parallel()

	if got := SliceWindow(models.TimeRange{Start: 10, End: 10}, time.Hour, 4); got != nil {
		t.Errorf("SliceWindow(empty) = %v, want nil", got)
	}
	if got := SliceWindow(models.TimeRange{Start: 10, End: 5}, time.Hour, 4); got != nil {
		t.Errorf("SliceWindow(inverted) = %v, want nil", got)
	}
}
