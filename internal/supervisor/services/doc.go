// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

// Package services adapts Callboard components to suture's context-aware
// Serve(ctx) error lifecycle.
package services
