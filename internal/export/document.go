// Package export writes tables, matched pairs and subject lists as JSON,
// YAML, XLSX or CSV. Objects keep their column order in every format.
package export

import (
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

// Record renders r as an ordered object: columns first, in order, then any
// field the columns do not list, sorted.
func Record(r records.Record, columns []string) yaml.MapSlice {
	obj := make(yaml.MapSlice, 0, len(r))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		if v, ok := r[c]; ok {
			obj = append(obj, yaml.MapItem{Key: c, Value: v})
		}
	}

	var extra []string
	for k := range r {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		obj = append(obj, yaml.MapItem{Key: k, Value: r[k]})
	}
	return obj
}

// Table renders t as a list of ordered objects.
func Table(t *records.Table) []any {
	doc := make([]any, len(t.Records))
	for i, r := range t.Records {
		doc[i] = Record(r, t.Columns)
	}
	return doc
}

// Pairs renders matched pairs as a list of [target, source] lists. The column
// lists fix the field order of each side.
func Pairs(pairs []records.Pair, targetColumns, sourceColumns []string) []any {
	doc := make([]any, len(pairs))
	for i, p := range pairs {
		doc[i] = []any{Record(p.Target, targetColumns), Record(p.Source, sourceColumns)}
	}
	return doc
}

// Subjects renders a subject set as a sorted string list.
func Subjects(set subjects.Set) []any {
	sorted := set.Sorted()
	doc := make([]any, len(sorted))
	for i, s := range sorted {
		doc[i] = s
	}
	return doc
}

// Changes renders a provenance log as a list of ordered objects.
func Changes(changes []provenance.Change) []any {
	doc := make([]any, len(changes))
	for i, c := range changes {
		doc[i] = yaml.MapSlice{
			{Key: "record", Value: c.Record},
			{Key: "field", Value: c.Field},
			{Key: "stage", Value: c.Stage},
			{Key: "source", Value: c.Source},
			{Key: "previous", Value: c.Previous},
			{Key: "value", Value: c.Value},
		}
	}
	return doc
}
