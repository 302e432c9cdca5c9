// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package normalize

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/callboard/internal/models"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func report(t *testing.T, kind models.ReportKind) *models.ReportDescriptor {
	t.Helper()
	d, ok := models.LookupReport(string(kind))
	if !ok {
		t.Fatalf("unknown report %s", kind)
	}
	return d
}

func mustRecords(t *testing.T, body any, desc *models.ReportDescriptor) ([]models.Record, Shape) {
	t.Helper()
	recs, shape, err := Records(body, desc)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	return recs, shape
}

func TestRecords_ShapeEquivalence(t *testing.T) {
	t.Parallel()

	desc := report(t, models.ReportAgentStatus)
	want, _ := mustRecords(t, decode(t, `[{"event_id":"e1","status":"ready"},{"event_id":"e2","status":"busy"}]`), desc)
	if len(want) != 2 {
		t.Fatalf("baseline produced %d records", len(want))
	}

	tests := []struct {
		name  string
		body  string
		shape Shape
	}{
		{"data wrapper", `{"data":[{"event_id":"e1","status":"ready"},{"event_id":"e2","status":"busy"}],"next_start_key":"k"}`, ShapeWrapped},
		{"rows wrapper", `{"rows":[{"event_id":"e1","status":"ready"},{"event_id":"e2","status":"busy"}]}`, ShapeWrapped},
		{"data pseudo-array", `{"data":{"1":{"event_id":"e2","status":"busy"},"0":{"event_id":"e1","status":"ready"}}}`, ShapeWrapped},
		{"pseudo-array", `{"1":{"event_id":"e2","status":"busy"},"0":{"event_id":"e1","status":"ready"}}`, ShapePseudoArray},
		{"nested pseudo-array", `{"0":{"0":{"event_id":"e1","status":"ready"}},"1":[{"event_id":"e2","status":"busy"}]}`, ShapePseudoArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, shape := mustRecords(t, decode(t, tt.body), desc)
			if shape != tt.shape {
				t.Errorf("shape = %s, want %s", shape, tt.shape)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("records = %v, want %v", got, want)
			}
		})
	}
}

func TestRecords_PseudoArrayNumericOrder(t *testing.T) {
	t.Parallel()

	body := decode(t, `{"10":{"n":10},"2":{"n":2},"0":{"n":0},"1":{"n":1},"3":{"n":3},"4":{"n":4},"5":{"n":5},"6":{"n":6},"7":{"n":7},"8":{"n":8},"9":{"n":9}}`)
	got, shape := mustRecords(t, body, nil)
	if shape != ShapePseudoArray {
		t.Fatalf("shape = %s", shape)
	}
	if len(got) != 11 {
		t.Fatalf("got %d records, want 11", len(got))
	}
	if n, _ := got[0].Text("n"); n != "0" {
		t.Errorf("first record n = %s, want 0", n)
	}
	if n, _ := got[10].Text("n"); n != "10" {
		t.Errorf("last record n = %s, want 10", n)
	}
	if n, _ := got[2].Text("n"); n != "2" {
		t.Errorf("third record n = %s, want 2", n)
	}
}

func TestRecords_PseudoArrayWithEnvelope(t *testing.T) {
	t.Parallel()

	want, _ := mustRecords(t, decode(t, `[{"n":0},{"n":1}]`), nil)
	body := decode(t, `{"0":{"n":0},"1":{"n":1},"next_start_key":"k","total":2}`)
	got, shape := mustRecords(t, body, nil)
	if shape != ShapePseudoArray {
		t.Fatalf("shape = %s, want %s", shape, ShapePseudoArray)
	}
	for i, r := range got {
		if _, ok := r[KeyField]; ok {
			t.Errorf("record %d carries %s: %v", i, KeyField, r)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("records = %v, want %v", got, want)
	}
}

func TestRecords_NestedCDRs(t *testing.T) {
	t.Parallel()

	desc := report(t, models.ReportCallDetailRecords)
	nested := decode(t, `[
		{"tenant_id":"t1","campaign_id":"c9","batch":"x","cdrs":{"0":{"call_id":"a"},"1":{"call_id":"b","campaign_id":"own"}}},
		{"call_id":"c","tenant_id":"t1","cdrs":[]}
	]`)
	flat := decode(t, `[
		{"call_id":"a","tenant_id":"t1","campaign_id":"c9"},
		{"call_id":"b","tenant_id":"t1","campaign_id":"own"},
		{"call_id":"c","tenant_id":"t1"}
	]`)

	got, _ := mustRecords(t, nested, desc)
	want, _ := mustRecords(t, flat, desc)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("nested records = %v, want %v", got, want)
	}
	if _, ok := got[0]["batch"]; ok {
		t.Error("non-inherited parent field leaked into child")
	}
}

func TestRecords_Flatten(t *testing.T) {
	t.Parallel()

	desc := report(t, models.ReportCallDetailRecords)
	body := decode(t, `[
		{"call_id":"1","vendor_data":{"disposition":{"code":"SALE","name":"Sale","notes":null}}},
		{"call_id":"2","disposition_code":"KEEP","vendor_data":{"disposition":{"code":"DROP"}}},
		{"call_id":"3","vendor_data":"{\"disposition\":{\"code\":\"CB\"}}"},
		{"call_id":"4","vendor_data":{"disposition":"none"}}
	]`)

	got, _ := mustRecords(t, body, desc)
	tests := []struct {
		idx   int
		field string
		want  string
		ok    bool
	}{
		{0, "disposition_code", "SALE", true},
		{0, "disposition_name", "Sale", true},
		{0, "disposition_notes", "", false},
		{1, "disposition_code", "KEEP", true},
		{2, "disposition_code", "CB", true},
		{3, "disposition_code", "", false},
	}
	for _, tt := range tests {
		v, ok := got[tt.idx].Text(tt.field)
		if ok != tt.ok || v != tt.want {
			t.Errorf("record %d %s = %q,%v want %q,%v", tt.idx, tt.field, v, ok, tt.want, tt.ok)
		}
	}
}

func TestRecords_KeyedFallback(t *testing.T) {
	t.Parallel()

	body := decode(t, `{"queue_b":{"calls":3},"queue_a":{"calls":5},"total":2,"next_start_key":null,"orphan":7}`)
	got, shape := mustRecords(t, body, nil)
	if shape != ShapeKeyed {
		t.Fatalf("shape = %s, want keyed", shape)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3: %v", len(got), got)
	}
	wantKeys := []string{"orphan", "queue_a", "queue_b"}
	for i, k := range wantKeys {
		if key, _ := got[i].Text(KeyField); key != k {
			t.Errorf("record %d key = %q, want %q", i, key, k)
		}
	}
	if v, _ := got[0].Text("value"); v != "7" {
		t.Errorf("scalar value = %q, want 7", v)
	}
	if v, _ := got[1].Text("calls"); v != "5" {
		t.Errorf("queue_a calls = %q, want 5", v)
	}
}

func TestRecords_UnknownShape(t *testing.T) {
	t.Parallel()

	for _, body := range []any{nil, "oops", json.Number("3"), true} {
		got, shape, err := Records(body, nil)
		if len(got) != 0 || got == nil {
			t.Errorf("Records(%v) = %v, want empty non-nil", body, got)
		}
		if shape != ShapeUnknown {
			t.Errorf("Records(%v) shape = %s", body, shape)
		}
		var se *UpstreamShapeError
		if !errors.As(err, &se) {
			t.Errorf("Records(%v) error = %v, want UpstreamShapeError", body, err)
		}
	}
}

func TestRecords_EmptyBodies(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		`[]`,
		`{}`,
		`{"data":[]}`,
		`{"data":null}`,
		`{"rows":null}`,
		`{"data":""}`,
		`{"success":true,"data":null,"next_start_key":null}`,
		`{"total":0,"next_start_key":""}`,
	} {
		got, _, err := Records(decode(t, s), nil)
		if err != nil || len(got) != 0 {
			t.Errorf("Records(%s) = %v, %v; want empty, nil", s, got, err)
		}
	}
}

func TestRecords_DoesNotMutateBody(t *testing.T) {
	t.Parallel()

	desc := report(t, models.ReportCallDetailRecords)
	body := decode(t, `[{"call_id":"1","vendor_data":{"disposition":{"code":"X"}}}]`)
	if _, _, err := Records(body, desc); err != nil {
		t.Fatal(err)
	}
	orig := body.([]any)[0].(map[string]any)
	if _, ok := orig["disposition_code"]; ok {
		t.Error("flatten mutated the decoded body")
	}
}

func TestNextCursor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"snake case", `{"data":[],"next_start_key":"abc"}`, "abc"},
		{"camel case", `{"rows":[],"nextStartKey":"def"}`, "def"},
		{"start_key", `{"start_key":" ghi "}`, "ghi"},
		{"numeric", `{"startKey":1700000000}`, "1700000000"},
		{"null", `{"next_start_key":null}`, ""},
		{"empty", `{"next_start_key":""}`, ""},
		{"false", `{"next_start_key":false}`, ""},
		{"composite", `{"next_start_key":{"id":"9","ts":5}}`, `{"id":"9","ts":5}`},
		{"meta", `{"data":[],"meta":{"nextStartKey":"m1"}}`, "m1"},
		{"array body", `[{"next_start_key":"x"}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextCursor(decode(t, tt.body), nil); got != tt.want {
				t.Errorf("NextCursor() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := NextCursor(decode(t, `{"cursor":"c1","next_start_key":"x"}`), []string{"cursor"}); got != "c1" {
		t.Errorf("custom field NextCursor() = %q, want c1", got)
	}
}
