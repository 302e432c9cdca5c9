// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import "github.com/tomtom215/callboard/internal/models"

// dedupSet accumulates unique records in first-seen order up to a limit.
type dedupSet struct {
	desc    *models.ReportDescriptor
	seen    map[string]struct{}
	records []models.Record
	limit   int
}

func newDedupSet(desc *models.ReportDescriptor, limit int) *dedupSet {
	capHint := limit
	if capHint > models.UpstreamPageSize {
		capHint = models.UpstreamPageSize
	}
	return &dedupSet{
		desc:    desc,
		seen:    make(map[string]struct{}, capHint),
		records: make([]models.Record, 0, capHint),
		limit:   limit,
	}
}

// add appends records whose identity has not been seen. It returns how many
// were added and whether an unseen record had to be left out because the
// set was full.
func (s *dedupSet) add(records []models.Record) (added int, overflow bool) {
	for _, rec := range records {
		key := s.desc.Identity(rec)
		if _, dup := s.seen[key]; dup {
			continue
		}
		if s.full() {
			return added, true
		}
		s.seen[key] = struct{}{}
		s.records = append(s.records, rec)
		added++
	}
	return added, false
}

func (s *dedupSet) full() bool {
	return len(s.records) >= s.limit
}

func (s *dedupSet) len() int {
	return len(s.records)
}
