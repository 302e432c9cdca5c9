// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/callboard/internal/logging"
)

// Sweeper is implemented by caches that can drop expired entries.
type Sweeper interface {
	Name() string
	Cleanup() int
}

// Janitor periodically sweeps expired entries from a cache.
// It implements suture.Service.
type Janitor struct {
	target   Sweeper
	interval time.Duration
}

// NewJanitor creates a janitor that sweeps target every interval.
// Non-positive intervals default to five minutes.
func NewJanitor(target Sweeper, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{target: target, interval: interval}
}

// Serve runs until ctx is canceled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.target.Cleanup(); n > 0 {
				logging.Debug().
					Str("cache", j.target.Name()).
					Int("evicted", n).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (j *Janitor) String() string {
	return "cache-janitor-" + j.target.Name()
}
