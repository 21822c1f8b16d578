// Package records holds the tabular record model shared by every stage:
// a Record is one row keyed by field name, a Table keeps the header order of
// the file it came from, and a Pair is one joined (target, source) row.
package records

import "slices"

// Record is a single row mapping field name to field value.
type Record map[string]string

// Get returns the value of field and whether the record carries it.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Pair is one matched row: the target record and the source record that
// shares its join key. Target is mutated by the merge stage; Source is
// read-only.
type Pair struct {
	Target Record
	Source Record
}

// Table is a named record collection with its column order.
type Table struct {
	Name    string
	Columns []string
	Records []Record
}

// NewTable creates an empty table with the given header.
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: slices.Clone(columns),
	}
}

// Append adds a record, registering any field the header does not know yet.
func (t *Table) Append(r Record) {
	t.addColumns(r)
	t.Records = append(t.Records, r)
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Row returns the values of record i in column order. Missing fields render
// as the empty string.
func (t *Table) Row(i int) []string {
	r := t.Records[i]
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = r[c]
	}
	return row
}

// Subset returns a table sharing the header and holding only the given
// records. The records themselves are shared, not copied.
func (t *Table) Subset(name string, recs []Record) *Table {
	return &Table{
		Name:    name,
		Columns: slices.Clone(t.Columns),
		Records: recs,
	}
}

func (t *Table) addColumns(r Record) {
	if len(r) == len(t.Columns) && t.coversAll(r) {
		return
	}
	var missing []string
	for k := range r {
		if !slices.Contains(t.Columns, k) {
			missing = append(missing, k)
		}
	}
	slices.Sort(missing)
	t.Columns = append(t.Columns, missing...)
}

func (t *Table) coversAll(r Record) bool {
	for _, c := range t.Columns {
		if _, ok := r[c]; !ok {
			return false
		}
	}
	return true
}
