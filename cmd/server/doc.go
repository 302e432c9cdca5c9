// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package main is the entry point for the Callboard server.

Callboard serves call center reports (call detail records, queue calls,
campaign activity and agent status) from an upstream reporting API that caps
every response at 500 records and paginates with an unreliable cursor. Each
request is aggregated into one deduplicated result, falling back to time
slicing when the cursor stops making progress.

# Application Architecture

	RootSupervisor ("callboard")
	├── BackgroundSupervisor ("background-layer")
	│   └── token source janitor (CREDENTIALS_MODE=oauth)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml, environment
 2. Logging: zerolog with JSON or console output
 3. Credentials: static bearer token or OAuth2 client credentials
 4. Upstream client, optionally behind a circuit breaker
 5. Aggregator
 6. HTTP router and supervisor tree

# Configuration

Required:
  - UPSTREAM_URL: base URL of the reporting API
  - UPSTREAM_TOKEN (static mode) or OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET
    and OAUTH_TOKEN_URL (CREDENTIALS_MODE=oauth)

Common options:
  - UPSTREAM_TIMEOUT: per page request timeout (default 5m)
  - AGGREGATE_MAX_LIMIT: hard cap on records per request (default 10000)
  - AGGREGATE_PAGE_DELAY: pause between upstream pages (default 250ms)
  - AGGREGATE_TIMEOUT: deadline for one report request (default 10m)
  - HTTP_PORT: listen port (default 8080)
  - LOG_LEVEL, LOG_FORMAT: logging (default info, json)

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests for HTTP_SHUTDOWN_TIMEOUT.

# Example

	export UPSTREAM_URL=https://reports.example.com
	export UPSTREAM_TOKEN=secret
	./callboard

	curl 'http://localhost:8080/api/v1/reports/call-detail-records?tenant=acme&limit=2000'
*/
package main
