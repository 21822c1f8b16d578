package reconciler

import (
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Merge copies mapped source values into the target record of every pair,
// in place. A target field is only written when it holds the empty string;
// existing target data is never overwritten. Every mapped field must exist on
// both records of every pair.
func Merge(fields []mapping.Field, pairs []records.Pair) (MergeStats, error) {
	stats := MergeStats{Pairs: len(pairs)}

	for i, p := range pairs {
		for _, f := range fields {
			current, ok := p.Target[f.Target]
			if !ok {
				return stats, errors.NewMissingFieldError("target", f.Target, i)
			}
			value, ok := p.Source[f.Source]
			if !ok {
				return stats, errors.NewMissingFieldError("source", f.Source, i)
			}

			if current != "" {
				stats.FieldsKept++
				continue
			}
			p.Target[f.Target] = value
			if value != "" {
				stats.FieldsFilled++
			}
		}
	}

	return stats, nil
}
