// Package provenance records field-level changes made to target records
// during a run: which stage changed which field of which record, and where
// the new value came from.
package provenance

import (
	"slices"
	"sync"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Change is one field rewrite.
type Change struct {
	Record   string // join-key value of the target record
	Field    string
	Stage    string
	Source   string // source field for merged values, "normalizer" for rewrites
	Previous string
	Value    string
}

// Tracker collects changes. Implementations are safe for concurrent use.
type Tracker interface {
	// Track records changes in order.
	Track(changes ...Change)

	// FindByRecord returns the changes made to one record.
	FindByRecord(record string) []Change

	// Changes returns every change in the order tracked.
	Changes() []Change

	// Len returns the number of tracked changes.
	Len() int

	// Clear removes all changes.
	Clear()
}

type tracker struct {
	mu       sync.RWMutex
	enabled  bool
	changes  []Change
	byRecord map[string][]int
}

// NewTracker creates a tracker. A disabled tracker drops everything.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		enabled:  enabled,
		byRecord: make(map[string][]int),
	}
}

func (t *tracker) Track(changes ...Change) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range changes {
		t.byRecord[c.Record] = append(t.byRecord[c.Record], len(t.changes))
		t.changes = append(t.changes, c)
	}
}

func (t *tracker) FindByRecord(record string) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := t.byRecord[record]
	out := make([]Change, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.changes[i])
	}
	return out
}

func (t *tracker) Changes() []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Change, len(t.changes))
	copy(out, t.changes)
	return out
}

func (t *tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.changes)
}

func (t *tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.changes = nil
	t.byRecord = make(map[string][]int)
}

// Fields returns the fields whose value differs between before and after,
// sorted. A field missing on one side counts as the empty string.
func Fields(before, after records.Record) []string {
	var out []string
	for f, v := range after {
		if before[f] != v {
			out = append(out, f)
		}
	}
	for f, v := range before {
		if _, ok := after[f]; !ok && v != "" {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}

// Diff returns a change for every field Fields reports, attributing the new
// value with source.
func Diff(record, stage string, before, after records.Record, source func(field string) string) []Change {
	fields := Fields(before, after)
	out := make([]Change, 0, len(fields))
	for _, f := range fields {
		out = append(out, Change{
			Record:   record,
			Field:    f,
			Stage:    stage,
			Source:   source(f),
			Previous: before[f],
			Value:    after[f],
		})
	}
	return out
}
