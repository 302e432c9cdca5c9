// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package api

import (
	"context"
	"errors"

	"github.com/tomtom215/callboard/internal/aggregate"
	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/upstream"
)

// upstreamService names the upstream in 502 messages.
const upstreamService = "reporting upstream"

// writeAggregateError maps an aggregator failure onto the response.
func writeAggregateError(rw *ResponseWriter, err error) {
	logger := logging.Ctx(rw.r.Context())

	var exhausted *aggregate.ExhaustedRetriesError
	var transport *upstream.TransportError

	switch {
	case errors.As(err, &exhausted):
		details := map[string]interface{}{"attempts": exhausted.Attempts}
		if errors.As(err, &transport) && transport.StatusCode != 0 {
			details["upstream_status"] = transport.StatusCode
		}
		logger.Warn().Err(err).Msg("Upstream retries exhausted")
		rw.ExternalServiceError(upstreamService, details)

	case errors.As(err, &transport):
		logger.Warn().Err(err).Msg("Upstream request failed")
		rw.ExternalServiceError(upstreamService, map[string]interface{}{"upstream_status": transport.StatusCode})

	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Aggregation deadline exceeded")
		rw.GatewayTimeout("Report aggregation timed out")

	case errors.Is(err, context.Canceled):
		// Client went away; the response is written for the access log only.
		logger.Debug().Err(err).Msg("Aggregation canceled by client")
		rw.GatewayTimeout("Report aggregation canceled")

	default:
		logger.Error().Err(err).Msg("Aggregation failed")
		rw.InternalError("Report aggregation failed")
	}
}
