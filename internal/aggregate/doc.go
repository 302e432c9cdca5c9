// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package aggregate pulls a bounded, deduplicated set of report records from an
upstream that paginates unreliably.

The upstream caps every response at 500 records, paginates with an opaque
cursor that sometimes stops advancing or cycles, and fails transiently. The
aggregator copes with each of these:

  - Retry wraps every page fetch with exponential backoff
    (BaseDelay * 2^attempt) up to MaxAttempts, then gives up with an
    *ExhaustedRetriesError carrying the last failure.
  - CursorDriver is an explicit state machine (Fetching, Advancing, Done)
    that ends the run when a cursor repeats SameCursorThreshold times in a
    row or when a previously seen cursor comes back.
  - Aggregator picks a strategy by requested limit: a single page for
    limits up to the page size, the cursor driver above it. Two consecutive
    pages without a new record (stagnation) switch to time slicing when
    the request has a time range.
  - SliceWindow splits a time range into contiguous sub-windows of at most
    SliceMaxWindow (never fewer than MinSlices), each fetched as one page.

All state is request scoped. Pagination anomalies never surface as errors;
the caller gets a best-effort result whose HasMore reflects the uncertainty.

Known limitation: a time-slice window holding more than one page of records
loses the excess. HasMore is set whenever a window comes back full.

Example:

	agg := aggregate.New(fetcher, aggregate.OptionsFromConfig(&cfg.Aggregate), cfg.Upstream.CursorFields)
	result, err := agg.Aggregate(ctx, models.FetchRequest{Report: desc, Tenant: "acme", Limit: 1200})
*/
package aggregate
