// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import (
	"time"

	"github.com/tomtom215/callboard/internal/models"
)

// SliceWindow splits tr into contiguous, near-equal sub-windows with
// integer-second bounds. The count is max(minSlices, ceil(duration/maxWindow)),
// capped at one window per second. The first window starts at tr.Start and
// the last ends exactly at tr.End. An empty range yields nil.
func SliceWindow(tr models.TimeRange, maxWindow time.Duration, minSlices int) []models.TimeRange {
	span := tr.End - tr.Start
	if span <= 0 {
		return nil
	}

	maxSecs := int64(maxWindow / time.Second)
	if maxSecs < 1 {
		maxSecs = 1
	}
	n := (span + maxSecs - 1) / maxSecs
	if n < int64(minSlices) {
		n = int64(minSlices)
	}
	if n > span {
		n = span
	}

	windows := make([]models.TimeRange, 0, n)
	start := tr.Start
	for i := int64(1); i <= n; i++ {
		end := tr.Start + span*i/n
		if i == n {
			end = tr.End
		}
		windows = append(windows, models.TimeRange{Start: start, End: end})
		start = end
	}
	return windows
}
