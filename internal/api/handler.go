// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"context"
	"time"

	"github.com/tomtom215/callboard/internal/models"
)

// ReportAggregator produces a deduplicated result for one report request.
// *aggregate.Aggregator satisfies it.
type ReportAggregator interface {
	Aggregate(ctx context.Context, req models.FetchRequest) (*models.Result, error)
	ClampLimit(limit int) int
}

// ReadinessChecker reports whether the upstream is accepting requests.
// *upstream.BreakerFetcher satisfies it.
type ReadinessChecker interface {
	Healthy() bool
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Aggregator ReportAggregator

	// Readiness is optional; nil means always ready.
	Readiness ReadinessChecker

	// TenantHeader is the request header consulted when the tenant query
	// parameter is absent.
	TenantHeader string

	// AggregateTimeout bounds one report request. Zero disables it.
	AggregateTimeout time.Duration

	Version string
}

// Handler serves the report and health endpoints.
type Handler struct {
	aggregator       ReportAggregator
	readiness        ReadinessChecker
	tenantHeader     string
	aggregateTimeout time.Duration
	version          string
	startTime        time.Time
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	tenantHeader := cfg.TenantHeader
	if tenantHeader == "" {
		tenantHeader = "X-Tenant-ID"
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		aggregator:       cfg.Aggregator,
		readiness:        cfg.Readiness,
		tenantHeader:     tenantHeader,
		aggregateTimeout: cfg.AggregateTimeout,
		version:          version,
		startTime:        time.Now(),
	}
}
