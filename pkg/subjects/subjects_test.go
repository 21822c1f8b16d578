package subjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

const field = "Vanderbilt Local Subjects[2083876]"

func TestCollect(t *testing.T) {
	tests := []struct {
		name string
		recs []records.Record
		want []string
	}{
		{name: "no records", want: []string{}},
		{
			name: "distinct across records",
			recs: []records.Record{{field: "A|B"}, {field: "B|C"}},
			want: []string{"A", "B", "C"},
		},
		{
			name: "records without the field skipped",
			recs: []records.Record{{"Filename": "a.jpg"}, {field: "Music"}},
			want: []string{"Music"},
		},
		{
			name: "empty value contributes empty string",
			recs: []records.Record{{field: ""}, {field: "Art"}},
			want: []string{"", "Art"},
		},
		{
			name: "values are not trimmed",
			recs: []records.Record{{field: "Art| Art"}},
			want: []string{" Art", "Art"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collect(tt.recs, field).Sorted())
		})
	}
}

func TestSet(t *testing.T) {
	s := make(Set)
	s.Add("b", "a", "b")

	assert.Equal(t, 2, s.Len())
	assert.Contains(t, s, "a")
	assert.NotContains(t, s, "c")

	tbl := s.Table()
	assert.Equal(t, []string{"Local Subjects"}, tbl.Columns)
	assert.Equal(t, []string{"a"}, tbl.Row(0))
	assert.Equal(t, []string{"b"}, tbl.Row(1))
}

func TestCollectContainsEverySegment(t *testing.T) {
	segment := rapid.SampledFrom([]string{"", "Art", "Music", "History", "a b"})

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "records")
		recs := make([]records.Record, n)
		var all []string
		for i := range recs {
			parts := rapid.SliceOfN(segment, 1, 4).Draw(t, "parts")
			v := parts[0]
			for _, p := range parts[1:] {
				v += "|" + p
			}
			recs[i] = records.Record{field: v}
			all = append(all, parts...)
		}

		set := Collect(recs, field)
		for _, p := range all {
			if _, ok := set[p]; !ok {
				t.Fatalf("segment %q missing from %v", p, set.Sorted())
			}
		}
		if set.Len() > len(all) {
			t.Fatalf("set has %d values from %d segments", set.Len(), len(all))
		}
	})
}
