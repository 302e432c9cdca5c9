// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package api exposes the report aggregator over HTTP using the chi router.

Routes:

	GET /api/v1/reports               list report kinds
	GET /api/v1/reports/{kind}        aggregate one report
	GET /api/v1/health/live           liveness probe
	GET /api/v1/health/ready          readiness probe (upstream circuit state)
	GET /metrics                      Prometheus exposition

Report queries accept tenant, start, end, limit and cursor parameters.
start and end take epoch seconds or RFC3339 timestamps. The tenant may also
be sent in the configured tenant header (X-Tenant-ID by default); the query
parameter wins when both are present.

Every JSON response uses the APIResponse envelope. Aggregator failures map
to status codes as follows:

	unknown report kind            404 NOT_FOUND
	malformed parameter            400 BAD_REQUEST
	failed validation              400 VALIDATION_FAILED
	upstream retries exhausted     502 EXTERNAL_SERVICE_FAILED
	aggregation deadline reached   504 GATEWAY_TIMEOUT
*/
package api
