// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package cache provides a small thread-safe TTL cache and the janitor service
that sweeps expired entries.

Callboard uses it to hold one OAuth token source per tenant so that tokens
are reused across report requests until they expire:

	sources := cache.New[oauth2.TokenSource]("token_source", 30*time.Minute)
	ts := sources.GetOrCreate(tenant, func() oauth2.TokenSource { ... })

Expired entries are dropped lazily on Get and in bulk by a Janitor running
under the supervisor tree. Hits, misses, evictions and entry counts are
exported as Prometheus metrics labelled with the cache name.
*/
package cache
