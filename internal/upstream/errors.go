// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package upstream

import (
	"fmt"
	"io"
)

// maxErrorBodySize limits how much of an error response body is kept
const maxErrorBodySize = 64 * 1024 // 64KB

// TransportError is a failed page request.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message is the upstream error body (truncated) or a short description.
	Message string

	// Path is the report path that was requested.
	Path string

	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("upstream %s: HTTP %d: %s", e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("upstream %s: HTTP %d", e.Path, e.StatusCode)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("upstream %s: %s: %v", e.Path, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("upstream %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("upstream %s: %s", e.Path, e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// readBodyForError reads at most 64KB of a response body for error reporting.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}
