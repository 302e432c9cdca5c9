// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package normalize

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultCursorFields are the response fields that may carry the next cursor.
var DefaultCursorFields = []string{"next_start_key", "nextStartKey", "start_key", "startKey"}

// NextCursor extracts the next-page cursor from a response body. Array
// bodies carry no cursor. Empty strings, null and false mean absent.
// A "meta" object is consulted after the top level.
func NextCursor(body any, fields []string) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	if len(fields) == 0 {
		fields = DefaultCursorFields
	}
	if c := cursorFrom(m, fields); c != "" {
		return c
	}
	if meta, ok := m["meta"].(map[string]any); ok {
		return cursorFrom(meta, fields)
	}
	return ""
}

func cursorFrom(m map[string]any, fields []string) string {
	for _, f := range fields {
		if c := cursorString(m[f]); c != "" {
			return c
		}
	}
	return ""
}

func cursorString(v any) string {
	switch c := v.(type) {
	case string:
		return strings.TrimSpace(c)
	case json.Number:
		return c.String()
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case map[string]any, []any:
		// Composite keys are passed back verbatim as JSON.
		if isEmptyCollection(c) {
			return ""
		}
		b, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return ""
}
