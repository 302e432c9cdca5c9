// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package normalize

// UpstreamShapeError reports a body that matched no known payload shape.
// It is informational: the page contributes zero records.
type UpstreamShapeError struct {
	// Type is the JSON type of the body (null, string, number, bool).
	Type string
}

// Error implements the error interface.
func (e *UpstreamShapeError) Error() string {
	return "unrecognized upstream payload: top-level " + e.Type
}
