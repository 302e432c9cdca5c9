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

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/callboard/config.yaml",
	"/etc/callboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			URL:            "",
			Timeout:        5 * time.Minute,
			TenantHeader:   "X-Tenant-ID",
			CursorParam:    "start_key",
			CursorFields:   []string{"next_start_key", "nextStartKey", "start_key", "startKey"},
			UserAgent:      "callboard/1.0",
			CircuitBreaker: true,
		},
		Credentials: CredentialsConfig{
			Mode:            "static",
			TenantParam:     "tenant_id",
			CacheTTL:        30 * time.Minute,
			JanitorInterval: 5 * time.Minute,
		},
		Aggregate: AggregateConfig{
			MaxAttempts:         3,
			BaseDelay:           time.Second,
			SameCursorThreshold: 3,
			StagnationThreshold: 2,
			PageSize:            500,
			MaxLimit:            10000,
			SliceMaxWindow:      4 * time.Hour,
			MinSlices:           4,
			PageDelay:           250 * time.Millisecond,
		},
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     11 * time.Minute,
			IdleTimeout:      2 * time.Minute,
			ShutdownTimeout:  30 * time.Second,
			AggregateTimeout: 10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// UPSTREAM_URL -> upstream.url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are koanf paths that accept comma-separated env values.
var sliceConfigPaths = []string{
	"upstream.cursor_fields",
	"credentials.scopes",
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings from env vars to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Upstream reporting API
	"upstream_url":                  "upstream.url",
	"upstream_timeout":              "upstream.timeout",
	"upstream_tenant_header":        "upstream.tenant_header",
	"upstream_cursor_param":         "upstream.cursor_param",
	"upstream_cursor_fields":        "upstream.cursor_fields",
	"upstream_user_agent":           "upstream.user_agent",
	"upstream_insecure_skip_verify": "upstream.insecure_skip_verify",
	"upstream_ca_bundle":            "upstream.ca_bundle",
	"upstream_circuit_breaker":      "upstream.circuit_breaker",

	// Credentials
	"credentials_mode":             "credentials.mode",
	"upstream_token":               "credentials.token",
	"oauth_client_id":              "credentials.client_id",
	"oauth_client_secret":          "credentials.client_secret",
	"oauth_token_url":              "credentials.token_url",
	"oauth_scopes":                 "credentials.scopes",
	"oauth_tenant_param":           "credentials.tenant_param",
	"credentials_cache_ttl":        "credentials.cache_ttl",
	"credentials_janitor_interval": "credentials.janitor_interval",

	// Aggregator
	"aggregate_max_attempts":          "aggregate.max_attempts",
	"aggregate_base_delay":            "aggregate.base_delay",
	"aggregate_same_cursor_threshold": "aggregate.same_cursor_threshold",
	"aggregate_stagnation_threshold":  "aggregate.stagnation_threshold",
	"aggregate_page_size":             "aggregate.page_size",
	"aggregate_max_limit":             "aggregate.max_limit",
	"aggregate_slice_max_window":      "aggregate.slice_max_window",
	"aggregate_min_slices":            "aggregate.min_slices",
	"aggregate_page_delay":            "aggregate.page_delay",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"aggregate_timeout":     "server.aggregate_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
