// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	client := upstream.NewClient(&cfg.Upstream, creds)
type Config struct {
	Upstream    UpstreamConfig    `koanf:"upstream"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Aggregate   AggregateConfig   `koanf:"aggregate"`
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// UpstreamConfig describes the reporting API.
type UpstreamConfig struct {
	// URL is the base URL; report paths are appended to it.
	URL string `koanf:"url"`

	// Timeout bounds a single page request. Report payloads can be large.
	Timeout time.Duration `koanf:"timeout"`

	// TenantHeader carries the tenant id on every request.
	TenantHeader string `koanf:"tenant_header"`

	// CursorParam is the query parameter used to send the resume cursor.
	CursorParam string `koanf:"cursor_param"`

	// CursorFields are the response fields checked for the next cursor.
	CursorFields []string `koanf:"cursor_fields"`

	UserAgent string `koanf:"user_agent"`

	// InsecureSkipVerify accepts any upstream certificate. CABundle is
	// preferred for self-signed deployments.
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify"`
	CABundle           string `koanf:"ca_bundle"`

	// CircuitBreaker wraps page fetches in a circuit breaker.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// CredentialsConfig selects how bearer tokens are obtained.
type CredentialsConfig struct {
	// Mode is "static" or "oauth".
	Mode string `koanf:"mode"`

	// Token is the fixed bearer token for static mode.
	Token string `koanf:"token"`

	// OAuth2 client-credentials settings.
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	TokenURL     string   `koanf:"token_url"`
	Scopes       []string `koanf:"scopes"`

	// TenantParam names the token endpoint parameter carrying the tenant.
	TenantParam string `koanf:"tenant_param"`

	// CacheTTL bounds how long a tenant's token source is reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// JanitorInterval is how often expired token sources are swept.
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// AggregateConfig tunes the report aggregator.
type AggregateConfig struct {
	MaxAttempts         int           `koanf:"max_attempts"`
	BaseDelay           time.Duration `koanf:"base_delay"`
	SameCursorThreshold int           `koanf:"same_cursor_threshold"`
	StagnationThreshold int           `koanf:"stagnation_threshold"`
	PageSize            int           `koanf:"page_size"`
	MaxLimit            int           `koanf:"max_limit"`
	SliceMaxWindow      time.Duration `koanf:"slice_max_window"`
	MinSlices           int           `koanf:"min_slices"`

	// PageDelay is the pause between successive pages and time slices.
	PageDelay time.Duration `koanf:"page_delay"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// AggregateTimeout is the deadline for one report request.
	AggregateTimeout time.Duration `koanf:"aggregate_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
