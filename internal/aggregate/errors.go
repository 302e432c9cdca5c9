// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import "fmt"

// ExhaustedRetriesError is returned when a page fetch failed on every
// attempt. Err is the last attempt's error, unmodified.
type ExhaustedRetriesError struct {
	Attempts int

	// Cursor is the cursor of the page that could not be fetched.
	Cursor string

	Err error
}

// Error implements the error interface.
func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("page fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the last attempt's error.
func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Err
}
