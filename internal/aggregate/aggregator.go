// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/metrics"
	"github.com/tomtom215/callboard/internal/models"
	"github.com/tomtom215/callboard/internal/normalize"
)

// Fetch strategies reported in models.Result.Strategy
const (
	StrategySinglePage = "single_page"
	StrategyCursor     = "cursor"
	StrategyTimeSlice  = "time_slice"
)

// PageFetcher performs one upstream call and returns the decoded body.
// upstream.Client and upstream.BreakerFetcher satisfy it.
type PageFetcher interface {
	FetchPage(ctx context.Context, req models.PageRequest) (any, error)
}

// Aggregator turns a FetchRequest into a deduplicated result. It holds no
// per-request state and is safe for concurrent use.
type Aggregator struct {
	fetcher      PageFetcher
	opts         Options
	cursorFields []string
}

// New creates an Aggregator. cursorFields names the response fields that
// may carry the next cursor; nil uses normalize.DefaultCursorFields.
func New(fetcher PageFetcher, opts Options, cursorFields []string) *Aggregator {
	if len(cursorFields) == 0 {
		cursorFields = normalize.DefaultCursorFields
	}
	return &Aggregator{
		fetcher:      fetcher,
		opts:         opts.withDefaults(),
		cursorFields: cursorFields,
	}
}

// Options returns the effective options.
func (a *Aggregator) Options() Options {
	return a.opts
}

// ClampLimit bounds a requested limit to [0, MaxLimit].
func (a *Aggregator) ClampLimit(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit > a.opts.MaxLimit:
		return a.opts.MaxLimit
	default:
		return limit
	}
}

// Aggregate fetches up to req.Limit unique records.
//
// Limits up to the page size are served by a single upstream call. Larger
// limits walk the cursor chain and fall back to time slicing when the chain
// stops producing new records and req.Range is set. Pagination anomalies
// end the run early with HasMore set; only a page that fails every retry,
// or a canceled ctx, produces an error.
func (a *Aggregator) Aggregate(ctx context.Context, req models.FetchRequest) (*models.Result, error) {
	if req.Report == nil {
		return nil, errors.New("aggregate: report descriptor is required")
	}

	requested := req.Limit
	req.Limit = a.ClampLimit(req.Limit)

	logCtx := logging.Ctx(ctx).With().
		Str("report", req.Report.Kind.String()).
		Int("limit", req.Limit)
	if logging.TenantFromContext(ctx) == "" && req.Tenant != "" {
		logCtx = logCtx.Str("tenant", req.Tenant)
	}
	logger := logCtx.Logger()
	if requested != req.Limit {
		logger.Debug().Int("requested", requested).Msg("Clamped requested limit")
	}

	r := &run{
		agg:    a,
		req:    req,
		log:    &logger,
		pacer:  newPacer(a.opts.PageDelay),
		result: &models.Result{},
	}

	start := time.Now()
	var err error
	if req.Limit <= a.opts.PageSize {
		r.result.Strategy = StrategySinglePage
		err = r.singlePage(ctx)
	} else {
		r.result.Strategy = StrategyCursor
		err = r.cursorPages(ctx)
	}

	report := req.Report.Kind.String()
	if err != nil {
		metrics.RecordAggregation(report, r.result.Strategy, time.Since(start), 0, err)
		logger.Warn().Err(err).Str("strategy", r.result.Strategy).Int("pages", r.result.Pages).Msg("Aggregation failed")
		return nil, err
	}

	r.result.Records = r.set.records
	metrics.RecordAggregation(report, r.result.Strategy, time.Since(start), len(r.result.Records), nil)
	logger.Debug().
		Str("strategy", r.result.Strategy).
		Int("pages", r.result.Pages).
		Int("records", len(r.result.Records)).
		Bool("has_more", r.result.HasMore).
		Dur("duration", time.Since(start)).
		Msg("Aggregation complete")
	return r.result, nil
}

// run is the state of one Aggregate call.
type run struct {
	agg    *Aggregator
	req    models.FetchRequest
	log    *zerolog.Logger
	pacer  *rate.Limiter
	set    *dedupSet
	result *models.Result
}

func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

func (r *run) singlePage(ctx context.Context) error {
	limit := r.req.Limit
	if limit == 0 {
		r.set = newDedupSet(r.req.Report, r.agg.opts.MaxLimit)
	} else {
		r.set = newDedupSet(r.req.Report, limit)
	}

	page, err := r.fetchPage(ctx, r.req.Cursor, r.req.Range, limit)
	if err != nil {
		return err
	}
	page.RequestCursor = r.req.Cursor

	_, truncated := r.set.add(page.Records)
	r.result.HasMore = truncated || page.NextCursor != ""
	if truncated {
		r.result.NextCursor = resumeCursor(page)
	} else {
		r.result.NextCursor = page.NextCursor
	}
	return nil
}

func (r *run) cursorPages(ctx context.Context) error {
	opts := r.agg.opts
	r.set = newDedupSet(r.req.Report, r.req.Limit)

	driver := NewCursorDriver(func(ctx context.Context, cursor string) (*models.Page, error) {
		return r.fetchPage(ctx, cursor, r.req.Range, opts.PageSize)
	}, r.req.Cursor, opts.SameCursorThreshold)

	var last *models.Page
	stagnant := 0
	stagnated := false

	for page, err := range driver.Pages(ctx) {
		if err != nil {
			return err
		}
		last = page

		added, overflow := r.set.add(page.Records)
		if r.set.full() {
			r.result.HasMore = overflow || page.NextCursor != ""
			if overflow {
				r.result.NextCursor = resumeCursor(page)
			} else {
				r.result.NextCursor = page.NextCursor
			}
			return nil
		}

		if added == 0 {
			stagnant++
		} else {
			stagnant = 0
		}
		if stagnant >= opts.StagnationThreshold && driver.State() != StateDone {
			stagnated = true
			break
		}
	}

	report := r.req.Report.Kind.String()
	if stagnated {
		metrics.RecordPaginationAnomaly(report, "stagnation")
		r.log.Info().
			Int("pages", driver.Fetched()).
			Int("records", r.set.len()).
			Msg("Cursor stopped yielding new records")
		if r.req.Range != nil && r.req.Range.Valid() {
			return r.timeSlices(ctx)
		}
		r.result.HasMore = true
		r.result.NextCursor = last.NextCursor
		return nil
	}

	reason := driver.Reason()
	if reason.Anomalous() {
		metrics.RecordPaginationAnomaly(report, reason.String())
		r.log.Warn().
			Str("reason", reason.String()).
			Str("cursor", driver.Cursor()).
			Int("pages", driver.Fetched()).
			Msg("Cursor pagination terminated early")
		r.result.HasMore = true
		if last != nil {
			r.result.NextCursor = last.NextCursor
		}
	}
	return nil
}

func (r *run) timeSlices(ctx context.Context) error {
	opts := r.agg.opts
	r.result.Strategy = StrategyTimeSlice
	r.result.NextCursor = ""

	windows := SliceWindow(*r.req.Range, opts.SliceMaxWindow, opts.MinSlices)
	r.log.Debug().Int("windows", len(windows)).Msg("Falling back to time slicing")

	anyFull := false
	for i := range windows {
		window := windows[i]
		page, err := r.fetchPage(ctx, "", &window, opts.PageSize)
		if err != nil {
			return err
		}
		metrics.RecordTimeSlice(r.req.Report.Kind.String())

		if len(page.Records) >= opts.PageSize {
			anyFull = true
			r.log.Debug().
				Int64("start", window.Start).
				Int64("end", window.End).
				Msg("Time slice returned a full page; records may be missing")
		}

		r.set.add(page.Records)
		if r.set.full() {
			r.result.HasMore = true
			return nil
		}
	}

	r.result.HasMore = anyFull
	return nil
}

// fetchPage performs one paced, retried upstream call and normalizes it.
func (r *run) fetchPage(ctx context.Context, cursor string, window *models.TimeRange, limit int) (*models.Page, error) {
	opts := r.agg.opts
	report := r.req.Report.Kind.String()

	if err := r.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	policy := RetryPolicy{
		MaxAttempts: opts.MaxAttempts,
		BaseDelay:   opts.BaseDelay,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			metrics.RecordRetry(report)
			r.log.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Str("cursor", cursor).Msg("Retrying upstream page")
		},
	}

	pageReq := models.PageRequest{
		Report: r.req.Report,
		Tenant: r.req.Tenant,
		Range:  window,
		Limit:  limit,
		Cursor: cursor,
	}
	body, err := Retry(ctx, policy, func(ctx context.Context) (any, error) {
		return r.agg.fetcher.FetchPage(ctx, pageReq)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("aggregation interrupted: %w", ctxErr)
		}
		return nil, &ExhaustedRetriesError{Attempts: opts.MaxAttempts, Cursor: cursor, Err: err}
	}
	r.result.Pages++

	records, shape, err := normalize.Records(body, r.req.Report)
	metrics.RecordPayloadShape(report, shape.String())
	if err != nil {
		var shapeErr *normalize.UpstreamShapeError
		if errors.As(err, &shapeErr) {
			r.log.Warn().Str("type", shapeErr.Type).Str("cursor", cursor).Msg("Unrecognized upstream payload; treating page as empty")
		} else {
			return nil, err
		}
	} else if shape == normalize.ShapeKeyed {
		r.log.Debug().Int("records", len(records)).Msg("Upstream payload matched keyed fallback")
	}

	return &models.Page{
		Records:       records,
		RequestCursor: cursor,
		NextCursor:    normalize.NextCursor(body, r.agg.cursorFields),
	}, nil
}

// resumeCursor is the cursor that refetches a partially consumed page. For
// the first page it is empty: the caller restarts from the beginning, since
// the upstream's next cursor would skip the unconsumed tail.
func resumeCursor(page *models.Page) string {
	return page.RequestCursor
}
