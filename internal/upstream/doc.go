// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package upstream talks to the multi-tenant call-center reporting API.

Key Components:

  - Client: performs exactly one authenticated GET per report page and
    returns the decoded JSON body. No retries at this layer.
  - BreakerFetcher: wraps a Fetcher in a sony/gobreaker circuit breaker so a
    failing upstream is shed quickly across concurrent report requests.
  - CredentialProvider: supplies a bearer token per tenant and the HTTP
    client configured to trust the upstream's certificate. StaticCredentials
    uses one fixed token; OAuthCredentials runs the OAuth2 client-credentials
    flow with one cached token source per tenant.

Request Format:

	GET {base}{report.path}?startDate=&endDate=&fields=&limit=&start_key=
	Authorization: Bearer <token>
	X-Tenant-ID: <tenant>
	User-Agent: callboard/1.0

Time bounds are epoch seconds. The cursor parameter and tenant header names
are configurable. Bodies are decoded with UseNumber so ids and epoch values
keep their exact textual form.

Errors:

Every failure is a *TransportError. StatusCode is zero for network,
credential and circuit-breaker failures. Callers treat all of them as
transient up to their retry budget.
*/
package upstream
