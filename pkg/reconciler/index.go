package reconciler

import (
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Index maps a join-key value to the record carrying it.
type Index struct {
	byKey      map[string]records.Record
	duplicates int
}

// NewIndex indexes recs by the value of key. When several records share a
// key value the last one wins; this is counted, not rejected. A record
// without the key field is a schema mismatch and fails the build.
func NewIndex(recs []records.Record, key string) (*Index, error) {
	idx := &Index{byKey: make(map[string]records.Record, len(recs))}
	for i, r := range recs {
		v, ok := r[key]
		if !ok {
			return nil, errors.NewMissingFieldError("source", key, i)
		}
		if _, exists := idx.byKey[v]; exists {
			idx.duplicates++
		}
		idx.byKey[v] = r
	}
	return idx, nil
}

// Lookup returns the record indexed under value.
func (idx *Index) Lookup(value string) (records.Record, bool) {
	r, ok := idx.byKey[value]
	return r, ok
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.byKey)
}

// Duplicates returns how many records were shadowed by a later record with
// the same key.
func (idx *Index) Duplicates() int {
	return idx.duplicates
}
