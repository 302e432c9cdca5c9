// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package upstream

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/callboard/internal/logging"
	"github.com/tomtom215/callboard/internal/metrics"
	"github.com/tomtom215/callboard/internal/models"
)

// BreakerFetcher wraps a Fetcher with the circuit breaker pattern so that an
// unavailable upstream is not hammered by every in-flight report request.
//
// The breaker is process-wide infrastructure; it holds no aggregation state.
type BreakerFetcher struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerFetcher wraps next in a circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerFetcher(next Fetcher, name string) *BreakerFetcher {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: isBreakerSuccess,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerFetcher{next: next, cb: cb, name: name}
}

// FetchPage fetches through the breaker. A rejected call is returned as a
// *TransportError wrapping gobreaker.ErrOpenState or ErrTooManyRequests.
func (b *BreakerFetcher) FetchPage(ctx context.Context, req models.PageRequest) (any, error) {
	body, err := b.cb.Execute(func() (any, error) {
		body, err := b.next.FetchPage(ctx, req)
		if err != nil && ctx.Err() != nil {
			return nil, &callerDoneError{err: err}
		}
		return body, err
	})
	var done *callerDoneError
	if errors.As(err, &done) {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "canceled").Inc()
		return nil, done.err
	}
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
		return body, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("breaker", b.name).Msg("Page request rejected by circuit breaker")
		return nil, &TransportError{Path: req.Report.Path, Message: "circuit breaker", Err: err}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
	return nil, err
}

// State returns the current breaker state.
func (b *BreakerFetcher) State() gobreaker.State {
	return b.cb.State()
}

// Healthy reports whether the breaker currently admits requests.
func (b *BreakerFetcher) Healthy() bool {
	return b.cb.State() != gobreaker.StateOpen
}

// callerDoneError marks a failure that happened after the caller's context
// ended, whether canceled or past its own deadline.
type callerDoneError struct {
	err error
}

func (e *callerDoneError) Error() string { return e.err.Error() }

func (e *callerDoneError) Unwrap() error { return e.err }

// isBreakerSuccess decides which errors count against the upstream.
// Caller cancellations, caller deadlines and client errors other than 408
// and 429 say nothing about upstream health. A bare DeadlineExceeded comes
// from the transport timeout and does count.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var done *callerDoneError
	if errors.As(err, &done) || errors.Is(err, context.Canceled) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
		return te.StatusCode != http.StatusRequestTimeout && te.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
