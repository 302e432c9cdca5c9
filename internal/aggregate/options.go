// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import (
	"time"

	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/models"
)

// Options tunes an Aggregator. Zero fields fall back to DefaultOptions,
// except delays, where zero means no wait.
type Options struct {
	MaxAttempts         int
	BaseDelay           time.Duration
	SameCursorThreshold int
	StagnationThreshold int

	// PageSize is the upstream per-response cap.
	PageSize int

	// MaxLimit is the ceiling requested limits are clamped to.
	MaxLimit int

	SliceMaxWindow time.Duration
	MinSlices      int

	// PageDelay spaces successive page and time-slice requests.
	PageDelay time.Duration
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:         3,
		BaseDelay:           time.Second,
		SameCursorThreshold: 3,
		StagnationThreshold: 2,
		PageSize:            models.UpstreamPageSize,
		MaxLimit:            10000,
		SliceMaxWindow:      4 * time.Hour,
		MinSlices:           4,
		PageDelay:           250 * time.Millisecond,
	}
}

// OptionsFromConfig builds Options from the aggregate config section.
func OptionsFromConfig(cfg *config.AggregateConfig) Options {
	return Options{
		MaxAttempts:         cfg.MaxAttempts,
		BaseDelay:           cfg.BaseDelay,
		SameCursorThreshold: cfg.SameCursorThreshold,
		StagnationThreshold: cfg.StagnationThreshold,
		PageSize:            cfg.PageSize,
		MaxLimit:            cfg.MaxLimit,
		SliceMaxWindow:      cfg.SliceMaxWindow,
		MinSlices:           cfg.MinSlices,
		PageDelay:           cfg.PageDelay,
	}
}

// withDefaults fills unset counters and sizes.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.SameCursorThreshold <= 0 {
		o.SameCursorThreshold = d.SameCursorThreshold
	}
	if o.StagnationThreshold <= 0 {
		o.StagnationThreshold = d.StagnationThreshold
	}
	if o.PageSize <= 0 {
		o.PageSize = d.PageSize
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = d.MaxLimit
	}
	if o.SliceMaxWindow <= 0 {
		o.SliceMaxWindow = d.SliceMaxWindow
	}
	if o.MinSlices <= 0 {
		o.MinSlices = d.MinSlices
	}
	if o.BaseDelay < 0 {
		o.BaseDelay = 0
	}
	if o.PageDelay < 0 {
		o.PageDelay = 0
	}
	return o
}
