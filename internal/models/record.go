// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Record is one upstream record. Field names and value types vary by report
// kind and upstream version.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Text returns the field as a trimmed string and whether it was present
// and non-empty. Numbers are formatted without exponent.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	s := scalarString(v)
	return s, s != ""
}

// firstPresent returns the first non-empty field among candidates.
func (r Record) firstPresent(candidates []string) (string, bool) {
	for _, f := range candidates {
		if s, ok := r.Text(f); ok {
			return s, true
		}
	}
	return "", false
}

// Identity derives the deduplication key for a record.
//
// Preference order:
//  1. First present id field: "id:<value>"
//  2. Composite of whichever origin, destination and timestamp fields are
//     present: "c:<origin>|<destination>|<timestamp>"
//  3. SHA-256 of the record's canonical JSON: "h:<hex>"
//
// Two distinct events lacking an id but sharing origin, destination and
// timestamp collapse to one key. Upstream offers no stronger identity.
func (d *ReportDescriptor) Identity(r Record) string {
	if id, ok := r.firstPresent(d.IDFields); ok {
		return "id:" + id
	}

	origin, hasOrigin := r.firstPresent(d.OriginFields)
	dest, hasDest := r.firstPresent(d.DestinationFields)
	ts, hasTS := r.firstPresent(d.TimestampFields)
	if hasOrigin || hasDest || hasTS {
		return "c:" + origin + "|" + dest + "|" + ts
	}

	return "h:" + hashRecord(r)
}

// Timestamp returns the record's primary timestamp. Epoch seconds,
// epoch milliseconds, RFC3339 and "2006-01-02 15:04:05" are recognized.
func (d *ReportDescriptor) Timestamp(r Record) (time.Time, bool) {
	for _, f := range d.TimestampFields {
		s, ok := r.Text(f)
		if !ok {
			continue
		}
		if t, ok := parseTimestamp(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Values past year 33658 in seconds are treated as milliseconds
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// hashRecord hashes the record's JSON form. Map keys are marshaled in
// sorted order so equal records hash equally.
func hashRecord(r Record) string {
	b, err := json.Marshal(map[string]any(r))
	if err != nil {
		b = []byte(fmt.Sprintf("%v", map[string]any(r)))
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:16])
}
