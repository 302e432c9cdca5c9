// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the validator library with a thread-safe singleton, a small set of
// custom tags and human-readable messages that slot into the API error
// envelope.
//
// # Field names
//
// Error field names come from the `query` struct tag when present, so
// messages name the parameter the client actually sent:
//
//	type ReportQuery struct {
//	    Tenant string `query:"tenant" validate:"required,tenant"`
//	    Limit  int    `query:"limit" validate:"gte=0"`
//	}
//
// yields "tenant is required" rather than "Tenant is required".
//
// # Custom tags
//
//   - tenant: 1-64 characters of letters, digits, '.', '_' or '-', starting
//     with a letter or digit
//   - cursor: printable ASCII without spaces, at most 2048 bytes
//
// # Usage
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
