// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: per-route request counts, latency and in-flight gauge,
    labelled by the chi route pattern to keep cardinality bounded
  - Compression: gzip for clients that accept it; report responses can carry
    up to 10,000 records

All middleware uses the func(http.Handler) http.Handler shape so it can be
passed straight to chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
