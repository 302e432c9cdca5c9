// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package models defines the data structures shared by the report aggregator.

Key Components:

  - ReportDescriptor: Immutable description of one upstream report kind
    (path, field projection, normalization rules, identity fields)
  - Record: Schema-less upstream record (field name to value)
  - FetchRequest: Caller input to the aggregator (tenant, range, limit, cursor)
  - Page: One upstream response after normalization
  - Result: Aggregator output (records, has_more, next_cursor)

Records are deliberately open maps. Shape differs by report kind and by
upstream version, so the only derived fields the aggregator relies on are the
identity key and the primary timestamp, both computed through the report's
descriptor:

	desc, ok := models.LookupReport("call-detail-records")
	key := desc.Identity(record)
	ts, ok := desc.Timestamp(record)

All values in this package are request-scoped except the descriptor table,
which is read-only after package initialization.
*/
package models
