// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package config loads and validates Callboard configuration.

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/callboard/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Only mapped environment variables are read; unrelated variables never leak
into the configuration.

# Sections

  - upstream: reporting API base URL, timeouts, header and cursor names, TLS
  - credentials: static bearer token or OAuth2 client credentials
  - aggregate: retry, pagination guard and time-slicing tuning
  - server: HTTP listener and the per-request aggregation deadline
  - security: CORS origins and API rate limiting
  - logging: level, format, caller

# Example

	upstream:
	  url: https://reports.example.com
	  insecure_skip_verify: false
	credentials:
	  mode: oauth
	  client_id: callboard
	  client_secret: s3cret
	  token_url: https://auth.example.com/oauth/token
	aggregate:
	  max_attempts: 3
	  base_delay: 1s
*/
package config
