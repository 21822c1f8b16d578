package provenance

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name          string
		before, after records.Record
		want          []string
	}{
		{
			name:   "identical",
			before: records.Record{"a": "1", "b": ""},
			after:  records.Record{"a": "1", "b": ""},
		},
		{
			name:   "changed and added",
			before: records.Record{"a": "1", "b": ""},
			after:  records.Record{"a": "2", "b": "", "c": "3"},
			want:   []string{"a", "c"},
		},
		{
			name:   "removed non-empty",
			before: records.Record{"a": "1", "z": ""},
			after:  records.Record{},
			want:   []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields(tt.before, tt.after))
		})
	}
}

func TestDiff(t *testing.T) {
	before := records.Record{"Filename": "a.jpg", "Title": "", "People": "John Smith"}
	after := records.Record{"Filename": "a.jpg", "Title": "Portrait", "People": "Smith, John"}

	got := Diff("a.jpg", "merged", before, after, func(f string) string { return "src:" + f })
	want := []Change{
		{Record: "a.jpg", Field: "People", Stage: "merged", Source: "src:People", Previous: "John Smith", Value: "Smith, John"},
		{Record: "a.jpg", Field: "Title", Stage: "merged", Source: "src:Title", Previous: "", Value: "Portrait"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker(true)
	tr.Track(
		Change{Record: "a.jpg", Field: "Title", Stage: "merged", Value: "Portrait"},
		Change{Record: "b.jpg", Field: "People", Stage: "normalized", Value: "Smith, John"},
		Change{Record: "a.jpg", Field: "People", Stage: "normalized", Value: "Doe, Jane"},
	)

	assert.Equal(t, 3, tr.Len())
	assert.Len(t, tr.FindByRecord("a.jpg"), 2)
	assert.Empty(t, tr.FindByRecord("c.jpg"))
	if diff := cmp.Diff([]Change{
		{Record: "a.jpg", Field: "Title", Stage: "merged", Value: "Portrait"},
		{Record: "a.jpg", Field: "People", Stage: "normalized", Value: "Doe, Jane"},
	}, tr.FindByRecord("a.jpg")); diff != "" {
		t.Errorf("FindByRecord() mismatch (-want +got):\n%s", diff)
	}

	changes := tr.Changes()
	changes[0].Value = "mutated"
	assert.Equal(t, "Portrait", tr.Changes()[0].Value)

	tr.Clear()
	assert.Zero(t, tr.Len())
	assert.Empty(t, tr.FindByRecord("a.jpg"))
}

func TestTrackerDisabled(t *testing.T) {
	tr := NewTracker(false)
	tr.Track(Change{Record: "a.jpg"})
	assert.Zero(t, tr.Len())
	assert.NotNil(t, tr.Changes())
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker(true)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Track(Change{Record: "a.jpg"})
			_ = tr.FindByRecord("a.jpg")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tr.Len())
}
