// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package aggregate

import (
	"context"
	"iter"

	"github.com/tomtom215/callboard/internal/models"
)

// State is the cursor driver's position in its state machine.
type State int

// Driver states
const (
	StateFetching State = iota
	StateAdvancing
	StateDone
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateAdvancing:
		return "advancing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// DoneReason records why the driver reached StateDone.
type DoneReason int

// Termination reasons
const (
	DoneNone DoneReason = iota
	DoneExhausted
	DoneStuck
	DoneCycle
	DoneError
)

// String implements fmt.Stringer. The values double as metric labels.
func (r DoneReason) String() string {
	switch r {
	case DoneNone:
		return "none"
	case DoneExhausted:
		return "exhausted"
	case DoneStuck:
		return "stuck_cursor"
	case DoneCycle:
		return "cursor_cycle"
	case DoneError:
		return "error"
	default:
		return "unknown"
	}
}

// Anomalous reports whether the run ended on a pagination fault rather than
// a natural end of data.
func (r DoneReason) Anomalous() bool {
	return r == DoneStuck || r == DoneCycle
}

// cursorTracker holds the transition rules of the driver, free of I/O.
type cursorTracker struct {
	current   string
	seen      map[string]struct{}
	sameCount int
	threshold int
	reason    DoneReason
}

func newCursorTracker(resume string, threshold int) *cursorTracker {
	t := &cursorTracker{
		current:   resume,
		seen:      make(map[string]struct{}),
		threshold: threshold,
	}
	if resume != "" {
		t.seen[resume] = struct{}{}
	}
	return t
}

// advance applies the upstream's next cursor for the page just fetched with
// t.current and returns the resulting state.
func (t *cursorTracker) advance(next string) State {
	if next == "" {
		t.reason = DoneExhausted
		return StateDone
	}

	if next == t.current {
		t.sameCount++
		if t.sameCount >= t.threshold {
			t.reason = DoneStuck
			return StateDone
		}
		return StateFetching
	}

	if _, dup := t.seen[next]; dup {
		t.reason = DoneCycle
		return StateDone
	}

	t.sameCount = 0
	t.seen[next] = struct{}{}
	t.current = next
	return StateFetching
}

// PageFunc fetches and normalizes the page addressed by cursor.
type PageFunc func(ctx context.Context, cursor string) (*models.Page, error)

// CursorDriver walks an upstream cursor chain one page at a time.
//
// A driver is single use and not safe for concurrent use. Every fetched
// page is returned to the caller, including the one that ended the run.
type CursorDriver struct {
	fetch   PageFunc
	tracker *cursorTracker
	state   State
	fetched int
	err     error
}

// NewCursorDriver creates a driver that starts at resume (empty for the
// first page). The resume cursor counts as already seen.
func NewCursorDriver(fetch PageFunc, resume string, sameCursorThreshold int) *CursorDriver {
	if sameCursorThreshold < 1 {
		sameCursorThreshold = 1
	}
	return &CursorDriver{
		fetch:   fetch,
		tracker: newCursorTracker(resume, sameCursorThreshold),
		state:   StateFetching,
	}
}

// Next fetches the next page. It returns (nil, nil) once the driver is
// done. A fetch error moves the driver to StateDone with DoneError.
func (d *CursorDriver) Next(ctx context.Context) (*models.Page, error) {
	if d.state == StateDone {
		return nil, nil
	}

	cursor := d.tracker.current
	page, err := d.fetch(ctx, cursor)
	if err != nil {
		d.state = StateDone
		d.tracker.reason = DoneError
		d.err = err
		return nil, err
	}
	if page == nil {
		page = &models.Page{}
	}
	page.RequestCursor = cursor
	d.fetched++

	d.state = StateAdvancing
	d.state = d.tracker.advance(page.NextCursor)
	return page, nil
}

// Pages iterates over the remaining pages. Iteration stops after the first
// error, which is yielded with a nil page.
func (d *CursorDriver) Pages(ctx context.Context) iter.Seq2[*models.Page, error] {
	return func(yield func(*models.Page, error) bool) {
		for {
			page, err := d.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if page == nil {
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// State returns the current state.
func (d *CursorDriver) State() State { return d.state }

// Reason returns why the driver finished, or DoneNone while it is running.
func (d *CursorDriver) Reason() DoneReason { return d.tracker.reason }

// Cursor returns the cursor the next fetch would use.
func (d *CursorDriver) Cursor() string { return d.tracker.current }

// Fetched returns the number of pages fetched successfully.
func (d *CursorDriver) Fetched() int { return d.fetched }

// Err returns the error that stopped the driver, if any.
func (d *CursorDriver) Err() error { return d.err }
