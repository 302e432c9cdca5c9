// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateCredentials(); err != nil {
		return err
	}

	if err := c.validateAggregate(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateUpstream() error {
	if c.Upstream.URL == "" {
		return fmt.Errorf("UPSTREAM_URL is required")
	}
	if err := validateHTTPURL(c.Upstream.URL, "UPSTREAM_URL"); err != nil {
		return err
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.Upstream.TenantHeader) == "" {
		return fmt.Errorf("UPSTREAM_TENANT_HEADER must not be empty")
	}
	if strings.TrimSpace(c.Upstream.CursorParam) == "" {
		return fmt.Errorf("UPSTREAM_CURSOR_PARAM must not be empty")
	}
	if c.Upstream.CABundle != "" {
		if _, err := os.Stat(c.Upstream.CABundle); err != nil {
			return fmt.Errorf("UPSTREAM_CA_BUNDLE not readable: %w", err)
		}
	}
	return nil
}

func (c *Config) validateCredentials() error {
	switch c.Credentials.Mode {
	case "static":
		if c.Credentials.Token == "" {
			return fmt.Errorf("UPSTREAM_TOKEN is required when CREDENTIALS_MODE=static")
		}
		if containsPlaceholder(c.Credentials.Token) {
			return fmt.Errorf("UPSTREAM_TOKEN contains a placeholder value")
		}
	case "oauth":
		if c.Credentials.ClientID == "" || c.Credentials.ClientSecret == "" {
			return fmt.Errorf("OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET are required when CREDENTIALS_MODE=oauth")
		}
		if containsPlaceholder(c.Credentials.ClientSecret) {
			return fmt.Errorf("OAUTH_CLIENT_SECRET contains a placeholder value")
		}
		if err := validateHTTPURL(c.Credentials.TokenURL, "OAUTH_TOKEN_URL"); err != nil {
			return err
		}
		if c.Credentials.CacheTTL <= 0 {
			return fmt.Errorf("CREDENTIALS_CACHE_TTL must be positive")
		}
	default:
		return fmt.Errorf("CREDENTIALS_MODE must be one of: static, oauth")
	}
	return nil
}

// Aggregator bounds
const (
	maxAttemptsCeiling = 10
	maxPageSize        = 500
	maxLimitCeiling    = 100000
)

func (c *Config) validateAggregate() error {
	a := c.Aggregate
	switch {
	case a.MaxAttempts < 1 || a.MaxAttempts > maxAttemptsCeiling:
		return fmt.Errorf("AGGREGATE_MAX_ATTEMPTS must be between 1 and %d", maxAttemptsCeiling)
	case a.BaseDelay < 0:
		return fmt.Errorf("AGGREGATE_BASE_DELAY must not be negative")
	case a.SameCursorThreshold < 1:
		return fmt.Errorf("AGGREGATE_SAME_CURSOR_THRESHOLD must be at least 1")
	case a.StagnationThreshold < 1:
		return fmt.Errorf("AGGREGATE_STAGNATION_THRESHOLD must be at least 1")
	case a.PageSize < 1 || a.PageSize > maxPageSize:
		return fmt.Errorf("AGGREGATE_PAGE_SIZE must be between 1 and %d", maxPageSize)
	case a.MaxLimit < a.PageSize || a.MaxLimit > maxLimitCeiling:
		return fmt.Errorf("AGGREGATE_MAX_LIMIT must be between AGGREGATE_PAGE_SIZE and %d", maxLimitCeiling)
	case a.SliceMaxWindow < time.Minute:
		return fmt.Errorf("AGGREGATE_SLICE_MAX_WINDOW must be at least 1m")
	case a.MinSlices < 1:
		return fmt.Errorf("AGGREGATE_MIN_SLICES must be at least 1")
	case a.PageDelay < 0:
		return fmt.Errorf("AGGREGATE_PAGE_DELAY must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.AggregateTimeout <= 0 {
		return fmt.Errorf("AGGREGATE_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns indicate a credential that was never filled in.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_TOKEN",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
