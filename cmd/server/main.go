// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

// @title Callboard API
// @version 1.0
// @description Aggregated, deduplicated call center reports from a paginated upstream reporting API.
// @BasePath /api/v1
// @schemes http https
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/callboard/docs"
	"github.com/tomtom215/callboard/internal/aggregate"
	"github.com/tomtom215/callboard/internal/api"
	"github.com/tomtom215/callboard/internal/config"
	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/supervisor"
	"github.com/tomtom215/callboard/internal/supervisor/services"
	"github.com/tomtom215/callboard/internal/upstream"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("upstream", cfg.Upstream.URL).
		Str("credentials", cfg.Credentials.Mode).
		Msg("Starting Callboard")

	creds, err := upstream.NewCredentials(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize upstream credentials")
	}

	var fetcher upstream.Fetcher = upstream.NewClient(&cfg.Upstream, creds)
	var readiness api.ReadinessChecker
	if cfg.Upstream.CircuitBreaker {
		breaker := upstream.NewBreakerFetcher(fetcher, "upstream-reports")
		fetcher = breaker
		readiness = breaker
		logging.Info().Msg("Upstream circuit breaker enabled")
	}

	agg := aggregate.New(fetcher, aggregate.OptionsFromConfig(&cfg.Aggregate), cfg.Upstream.CursorFields)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*). Set explicit origins in production.")
			break
		}
	}

	handler := api.NewHandler(api.HandlerConfig{
		Aggregator:       agg,
		Readiness:        readiness,
		TenantHeader:     cfg.Upstream.TenantHeader,
		AggregateTimeout: cfg.Server.AggregateTimeout,
		Version:          version,
	})
	chiMiddleware := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security, cfg.Upstream.TenantHeader))
	router := api.NewRouter(handler, chiMiddleware)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if oauth, ok := creds.(*upstream.OAuthCredentials); ok {
		tree.AddBackgroundService(oauth.Janitor(cfg.Credentials.JanitorInterval))
	}

	server := services.NewHTTPServer(&cfg.Server, router.SetupChi())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
		stop()
		os.Exit(1)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	logging.Info().Msg("Callboard stopped")
}
