// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

/*
Package normalize turns the decoded body of one upstream report response into
a flat, ordered list of records.

The reporting API is not consistent about how it wraps its rows. Depending on
report kind and upstream version a response may be:

  - a JSON array of records
  - an object with a "data" or "rows" field holding the array
  - an object keyed "0".."n-1" (a pseudo-array), whose values may themselves
    be pseudo-arrays one level deeper
  - an object of unknown shape, handled by a keyed fallback

The first matching shape wins. After shape detection, report descriptors drive
two record-level transforms: unwrapping a nested child collection (for example
the "cdrs" field of a call) into sibling records, and flattening nested
annotation objects onto top-level fields. Neither transform contains
report-specific code.

Bodies that match no shape at all (scalars, null) yield zero records and an
*UpstreamShapeError. Callers log it and carry on; absence of data is not a
fetch failure.
*/
package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/callboard/internal/models"
)

// Shape identifies which payload layout matched.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeArray
	ShapeWrapped
	ShapePseudoArray
	ShapeKeyed
)

// String returns the metric label for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeWrapped:
		return "wrapped"
	case ShapePseudoArray:
		return "pseudo_array"
	case ShapeKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// KeyField is injected into records produced by the keyed fallback.
const KeyField = "_key"

// wrapperFields are checked in order for the wrapped shape.
var wrapperFields = []string{"data", "rows"}

// envelopeFields are response metadata, never records.
var envelopeFields = map[string]struct{}{
	"next_start_key": {},
	"nextStartKey":   {},
	"start_key":      {},
	"startKey":       {},
	"total":          {},
	"count":          {},
	"status":         {},
	"message":        {},
	"success":        {},
	"meta":           {},
}

// Records normalizes one decoded response body for the given report.
// The body is not modified.
func Records(body any, desc *models.ReportDescriptor) ([]models.Record, Shape, error) {
	items, shape, err := detect(body)
	if err != nil {
		return []models.Record{}, shape, err
	}

	out := make([]models.Record, 0, len(items))
	for _, item := range items {
		rec, ok := toRecord(item)
		if !ok {
			continue
		}
		for _, r := range unwrapNested(rec, desc) {
			applyFlatten(r, desc)
			out = append(out, r)
		}
	}
	return out, shape, nil
}

func detect(body any) ([]any, Shape, error) {
	switch b := body.(type) {
	case []any:
		return b, ShapeArray, nil
	case map[string]any:
		for _, f := range wrapperFields {
			v, present := b[f]
			if !present {
				continue
			}
			switch inner := v.(type) {
			case nil:
				return nil, ShapeWrapped, nil
			case string:
				if strings.TrimSpace(inner) == "" {
					return nil, ShapeWrapped, nil
				}
			case []any:
				return inner, ShapeWrapped, nil
			case map[string]any:
				if vals, ok := pseudoArrayValues(inner); ok {
					return vals, ShapeWrapped, nil
				}
			}
		}
		if payload := withoutEnvelope(b); len(payload) > 0 {
			if vals, ok := pseudoArrayValues(payload); ok {
				return expandOneLevel(vals), ShapePseudoArray, nil
			}
		}
		return keyedRecords(b), ShapeKeyed, nil
	case nil:
		return nil, ShapeUnknown, &UpstreamShapeError{Type: "null"}
	default:
		return nil, ShapeUnknown, &UpstreamShapeError{Type: typeName(body)}
	}
}

// withoutEnvelope returns m minus its envelope fields.
func withoutEnvelope(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, skip := envelopeFields[k]; !skip {
			out[k] = v
		}
	}
	return out
}

// pseudoArrayValues returns the values of a mapping whose keys are exactly
// "0".."n-1", in numeric key order.
func pseudoArrayValues(m map[string]any) ([]any, bool) {
	vals := make([]any, len(m))
	for i := range vals {
		v, ok := m[strconv.Itoa(i)]
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// expandOneLevel replaces elements that are themselves collections with
// their children.
func expandOneLevel(vals []any) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		if children, ok := collection(v); ok {
			out = append(out, children...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// collection reports whether v is an array or a pseudo-array mapping.
func collection(v any) ([]any, bool) {
	switch c := v.(type) {
	case []any:
		return c, true
	case map[string]any:
		if len(c) == 0 {
			return nil, false
		}
		return pseudoArrayValues(c)
	}
	return nil, false
}

// keyedRecords produces one record per key, in sorted key order so repeated
// fetches of the same body yield the same sequence.
func keyedRecords(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		if _, skip := envelopeFields[k]; skip {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if obj, ok := v.(map[string]any); ok {
			rec := make(map[string]any, len(obj)+1)
			for fk, fv := range obj {
				rec[fk] = fv
			}
			if _, exists := rec[KeyField]; !exists {
				rec[KeyField] = k
			}
			out = append(out, rec)
			continue
		}
		out = append(out, map[string]any{KeyField: k, "value": v})
	}
	return out
}

// toRecord copies a mapping into a record. Scalars become {"value": v};
// null elements are dropped.
func toRecord(item any) (models.Record, bool) {
	switch v := item.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return models.Record(v).Clone(), true
	default:
		return models.Record{"value": v}, true
	}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	default:
		if _, ok := v.(interface{ String() string }); ok {
			return "number"
		}
		return "unknown"
	}
}
