// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package upstream

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/logging"
)

// NewHTTPClient builds the HTTP client used for both report and token
// requests. It trusts the system roots plus an optional CA bundle, and skips
// verification entirely only when explicitly configured.
func NewHTTPClient(cfg *config.UpstreamConfig) (*http.Client, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if cfg.CABundle != "" {
		pem, err := os.ReadFile(cfg.CABundle)
		if err != nil {
			return nil, fmt.Errorf("read CA bundle: %w", err)
		}
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("CA bundle %s contains no certificates", cfg.CABundle)
		}
		tlsCfg.RootCAs = pool
	}

	if cfg.InsecureSkipVerify {
		logging.Warn().Str("upstream", cfg.URL).Msg("TLS verification disabled for upstream")
		tlsCfg.InsecureSkipVerify = true //nolint:gosec // operator opt-in for self-signed upstreams
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}, nil
}
