// Package subjects gathers the distinct values of a pipe-delimited field
// across a record collection.
package subjects

import (
	"slices"
	"strings"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Set is an unordered collection of distinct values.
type Set map[string]struct{}

// Collect splits field on the list delimiter in every record that carries it
// and returns the distinct values. An empty field value contributes the empty
// string, as splitting "" yields one empty element.
func Collect(recs []records.Record, field string) Set {
	set := make(Set)
	for _, r := range recs {
		v, ok := r[field]
		if !ok {
			continue
		}
		set.Add(strings.Split(v, constants.ValueDelimiter)...)
	}
	return set
}

// Add inserts values.
func (s Set) Add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Len returns the number of distinct values.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the values in ascending byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Table renders the set as a one-column table, one value per record, under
// the Local Subjects header.
func (s Set) Table() *records.Table {
	t := records.NewTable("localsubjects", []string{constants.LocalSubjectsHeader})
	for _, v := range s.Sorted() {
		t.Append(records.Record{constants.LocalSubjectsHeader: v})
	}
	return t
}
