// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tomtom215/callboard/internal/cache"
	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/logging"
)

// CredentialProvider supplies a currently valid bearer token for a tenant and
// the HTTP client configured for the upstream's certificate. Caching and
// refresh are the provider's responsibility.
type CredentialProvider interface {
	Token(ctx context.Context, tenant string) (string, error)
	HTTPClient() *http.Client
}

// ErrEmptyToken is returned when a provider yields no token.
var ErrEmptyToken = errors.New("credential provider returned an empty token")

// StaticCredentials uses one fixed token for every tenant.
type StaticCredentials struct {
	token  string
	client *http.Client
}

// NewStaticCredentials creates a fixed-token provider.
func NewStaticCredentials(token string, client *http.Client) *StaticCredentials {
	return &StaticCredentials{token: token, client: client}
}

// Token returns the fixed token.
func (s *StaticCredentials) Token(_ context.Context, _ string) (string, error) {
	if s.token == "" {
		return "", ErrEmptyToken
	}
	return s.token, nil
}

// HTTPClient returns the configured HTTP client.
func (s *StaticCredentials) HTTPClient() *http.Client {
	return s.client
}

// OAuthCredentials obtains tokens with the OAuth2 client-credentials grant.
// Each tenant gets its own reusable token source, cached for CacheTTL, with
// the tenant sent as an extra token endpoint parameter.
type OAuthCredentials struct {
	base        clientcredentials.Config
	tenantParam string
	client      *http.Client
	sources     *cache.Cache[oauth2.TokenSource]
}

// tokenSourceCacheName labels the token source cache metrics.
const tokenSourceCacheName = "token_source"

// NewOAuthCredentials creates a client-credentials provider.
func NewOAuthCredentials(cfg *config.CredentialsConfig, client *http.Client) *OAuthCredentials {
	return &OAuthCredentials{
		base: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		},
		tenantParam: cfg.TenantParam,
		client:      client,
		sources:     cache.New[oauth2.TokenSource](tokenSourceCacheName, cfg.CacheTTL),
	}
}

// Token returns a valid access token for the tenant, fetching a new one only
// when the cached token has expired.
func (o *OAuthCredentials) Token(ctx context.Context, tenant string) (string, error) {
	src := o.sources.GetOrCreate(tenant, func() oauth2.TokenSource {
		return o.newSource(tenant)
	})

	tok, err := src.Token()
	if err != nil {
		// Drop the source so the next call starts a fresh exchange
		o.sources.Delete(tenant)
		return "", fmt.Errorf("oauth token for tenant %q: %w", tenant, err)
	}
	if tok.AccessToken == "" {
		return "", ErrEmptyToken
	}

	logging.Ctx(ctx).Trace().
		Str("token", logging.RedactToken(tok.AccessToken)).
		Time("expiry", tok.Expiry).
		Msg("Using upstream access token")
	return tok.AccessToken, nil
}

func (o *OAuthCredentials) newSource(tenant string) oauth2.TokenSource {
	cc := o.base
	if o.tenantParam != "" && tenant != "" {
		cc.EndpointParams = url.Values{o.tenantParam: {tenant}}
	}
	// Token requests share the upstream TLS settings
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.client)
	return cc.TokenSource(ctx)
}

// HTTPClient returns the configured HTTP client.
func (o *OAuthCredentials) HTTPClient() *http.Client {
	return o.client
}

// Janitor returns a service that sweeps expired token sources.
func (o *OAuthCredentials) Janitor(interval time.Duration) *cache.Janitor {
	return cache.NewJanitor(o.sources, interval)
}

// NewCredentials builds the provider selected by cfg.Credentials.Mode.
func NewCredentials(cfg *config.Config) (CredentialProvider, error) {
	client, err := NewHTTPClient(&cfg.Upstream)
	if err != nil {
		return nil, err
	}

	switch cfg.Credentials.Mode {
	case "static":
		return NewStaticCredentials(cfg.Credentials.Token, client), nil
	case "oauth":
		return NewOAuthCredentials(&cfg.Credentials, client), nil
	default:
		return nil, fmt.Errorf("unknown credentials mode %q", cfg.Credentials.Mode)
	}
}
