// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package normalize

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/callboard/internal/models"
)

// unwrapNested splits a record whose NestedKey holds a collection of child
// records into those children. Children inherit the descriptor's
// InheritFields from the parent when they lack them. A record without a
// usable nested collection is returned unchanged (minus an empty nested key).
func unwrapNested(rec models.Record, desc *models.ReportDescriptor) []models.Record {
	if desc == nil || desc.NestedKey == "" {
		return []models.Record{rec}
	}
	raw, present := rec[desc.NestedKey]
	if !present {
		return []models.Record{rec}
	}

	children, ok := collection(raw)
	if !ok || len(children) == 0 {
		if isEmptyCollection(raw) {
			delete(rec, desc.NestedKey)
		}
		return []models.Record{rec}
	}

	out := make([]models.Record, 0, len(children))
	for _, c := range children {
		obj, ok := c.(map[string]any)
		if !ok {
			continue
		}
		child := models.Record(obj).Clone()
		for _, f := range desc.InheritFields {
			if _, has := child[f]; has {
				continue
			}
			if v, has := rec[f]; has {
				child[f] = v
			}
		}
		out = append(out, child)
	}
	if len(out) == 0 {
		delete(rec, desc.NestedKey)
		return []models.Record{rec}
	}
	return out
}

func isEmptyCollection(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case []any:
		return len(c) == 0
	case map[string]any:
		return len(c) == 0
	case string:
		return strings.TrimSpace(c) == ""
	}
	return false
}

// applyFlatten copies nested annotation values onto top-level fields.
// Existing top-level values win.
func applyFlatten(rec models.Record, desc *models.ReportDescriptor) {
	if desc == nil {
		return
	}
	for _, rule := range desc.Flatten {
		src, ok := lookupPath(rec, rule.Source)
		if !ok {
			continue
		}
		for from, to := range rule.Fields {
			if _, exists := rec[to]; exists {
				continue
			}
			if v, ok := src[from]; ok && v != nil {
				rec[to] = v
			}
		}
	}
}

// lookupPath walks a dotted path of nested objects. Objects serialized as
// JSON strings (some vendors embed them that way) are decoded on the fly.
func lookupPath(rec models.Record, path string) (map[string]any, bool) {
	var cur any = map[string]any(rec)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return asObject(cur)
}

func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case models.Record:
		return o, true
	case string:
		s := strings.TrimSpace(o)
		if !strings.HasPrefix(s, "{") {
			return nil, false
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(s)))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, false
		}
		return obj, true
	}
	return nil, false
}
