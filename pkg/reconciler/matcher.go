package reconciler

import (
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Match joins target records to source records on equal key values. Pairs
// come back in target order; target records without a source match are left
// out of the result but are not modified or removed from target.
func Match(source, target []records.Record, keys mapping.Keys) ([]records.Pair, MatchStats, error) {
	stats := MatchStats{Sources: len(source), Targets: len(target)}

	idx, err := NewIndex(source, keys.Source)
	if err != nil {
		return nil, stats, err
	}
	stats.DuplicateKeys = idx.Duplicates()

	pairs := make([]records.Pair, 0, min(len(source), len(target)))
	for i, t := range target {
		v, ok := t[keys.Target]
		if !ok {
			return nil, stats, errors.NewMissingFieldError("target", keys.Target, i)
		}
		s, found := idx.Lookup(v)
		if !found {
			continue
		}
		pairs = append(pairs, records.Pair{Target: t, Source: s})
	}

	stats.Matched = len(pairs)
	stats.Unmatched = len(target) - len(pairs)
	return pairs, stats, nil
}
