// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package models

import (
	"sort"
	"strings"
)

// ReportKind identifies one upstream report.
type ReportKind string

// Supported report kinds
const (
	ReportCallDetailRecords  ReportKind = "call-detail-records"
	ReportInboundQueueCalls  ReportKind = "inbound-queue-calls"
	ReportOutboundQueueCalls ReportKind = "outbound-queue-calls"
	ReportCampaignActivity   ReportKind = "campaign-activity"
	ReportAgentStatus        ReportKind = "agent-status"
)

// FlattenRule copies values out of a nested annotation object onto top-level
// record fields. Source is a dotted path to the nested object (for example
// "vendor_data.disposition"); Fields maps nested keys to top-level names.
// Existing top-level values are never overwritten.
type FlattenRule struct {
	Source string            `json:"source"`
	Fields map[string]string `json:"fields"`
}

// ReportDescriptor describes how to query and interpret one report kind.
//
// Descriptors are immutable and defined once in the reports table. Every
// report-specific behavior of the normalizer and the deduplicator is driven
// by these fields rather than by per-report code.
type ReportDescriptor struct {
	Kind        ReportKind `json:"kind"`
	Description string     `json:"description"`

	// Path is appended to the upstream base URL.
	Path string `json:"path"`

	// Fields is the optional fixed projection sent as the "fields" parameter.
	Fields []string `json:"fields,omitempty"`

	// NestedKey names a field whose value is a (pseudo-)array of child
	// records that must be unwrapped into siblings. Empty disables it.
	NestedKey string `json:"-"`

	// InheritFields are copied from a parent record into unwrapped children
	// that lack them.
	InheritFields []string `json:"-"`

	// Flatten lists nested annotation objects promoted to top-level fields.
	Flatten []FlattenRule `json:"-"`

	// Identity candidates, in order of preference.
	IDFields          []string `json:"-"`
	OriginFields      []string `json:"-"`
	DestinationFields []string `json:"-"`
	TimestampFields   []string `json:"-"`
}

var dispositionFlatten = FlattenRule{
	Source: "vendor_data.disposition",
	Fields: map[string]string{
		"code":  "disposition_code",
		"name":  "disposition_name",
		"notes": "disposition_notes",
	},
}

var queueFields = []string{
	"call_id", "queue_id", "queue_name", "caller_number", "called_number",
	"agent_id", "agent_name", "start_time", "answer_time", "end_time",
	"wait_seconds", "talk_seconds", "result", "recording_url",
}

var callOrigin = []string{"caller_number", "from", "ani", "src", "origin"}
var callDestination = []string{"called_number", "to", "dnis", "dst", "destination"}
var callTimestamps = []string{"start_time", "timestamp", "call_start", "created_at", "date"}

// reports is the descriptor table. It is read-only after initialization.
var reports = map[ReportKind]*ReportDescriptor{
	ReportCallDetailRecords: {
		Kind:              ReportCallDetailRecords,
		Description:       "Call detail records for all inbound and outbound calls",
		Path:              "/api/v1/reports/cdrs",
		NestedKey:         "cdrs",
		InheritFields:     []string{"tenant_id", "campaign_id", "campaign_name"},
		Flatten:           []FlattenRule{dispositionFlatten},
		IDFields:          []string{"call_id", "cdr_id", "uuid", "id"},
		OriginFields:      callOrigin,
		DestinationFields: callDestination,
		TimestampFields:   callTimestamps,
	},
	ReportInboundQueueCalls: {
		Kind:              ReportInboundQueueCalls,
		Description:       "Calls offered to inbound queues",
		Path:              "/api/v1/reports/queues/inbound",
		Fields:            queueFields,
		Flatten:           []FlattenRule{dispositionFlatten},
		IDFields:          []string{"call_id", "queue_call_id", "id"},
		OriginFields:      callOrigin,
		DestinationFields: callDestination,
		TimestampFields:   callTimestamps,
	},
	ReportOutboundQueueCalls: {
		Kind:              ReportOutboundQueueCalls,
		Description:       "Calls placed from outbound queues",
		Path:              "/api/v1/reports/queues/outbound",
		Fields:            queueFields,
		Flatten:           []FlattenRule{dispositionFlatten},
		IDFields:          []string{"call_id", "queue_call_id", "id"},
		OriginFields:      callOrigin,
		DestinationFields: callDestination,
		TimestampFields:   callTimestamps,
	},
	ReportCampaignActivity: {
		Kind:        ReportCampaignActivity,
		Description: "Dialer campaign attempts and outcomes",
		Path:        "/api/v1/reports/campaigns/activity",
		Flatten: []FlattenRule{
			dispositionFlatten,
			{
				Source: "contact",
				Fields: map[string]string{
					"phone":       "contact_phone",
					"name":        "contact_name",
					"external_id": "contact_external_id",
				},
			},
		},
		IDFields:          []string{"attempt_id", "call_id", "id"},
		OriginFields:      []string{"caller_id", "caller_number", "from"},
		DestinationFields: []string{"contact_phone", "called_number", "to"},
		TimestampFields:   []string{"attempt_time", "start_time", "timestamp"},
	},
	ReportAgentStatus: {
		Kind:              ReportAgentStatus,
		Description:       "Agent state changes (ready, busy, wrap-up, break)",
		Path:              "/api/v1/reports/agents/status",
		Fields:            []string{"event_id", "agent_id", "agent_name", "status", "reason", "timestamp", "duration_seconds"},
		IDFields:          []string{"event_id", "id"},
		OriginFields:      []string{"agent_id", "agent_name", "extension"},
		DestinationFields: []string{"status", "state"},
		TimestampFields:   []string{"timestamp", "changed_at", "start_time"},
	},
}

// LookupReport returns the descriptor for a report kind.
// Lookup is case-insensitive and tolerates surrounding whitespace.
func LookupReport(kind string) (*ReportDescriptor, bool) {
	desc, ok := reports[ReportKind(strings.ToLower(strings.TrimSpace(kind)))]
	return desc, ok
}

// ReportDescriptors returns all descriptors sorted by kind.
func ReportDescriptors() []*ReportDescriptor {
	out := make([]*ReportDescriptor, 0, len(reports))
	for _, d := range reports {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// String implements fmt.Stringer.
func (k ReportKind) String() string {
	return string(k)
}
