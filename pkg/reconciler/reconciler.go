// Package reconciler joins the JStore export to the Cortex export on their
// filename keys and fills empty JStore fields from the matching Cortex row.
//
// The merge is a gap filler: a target field that already holds a value is
// never changed, and source records are never written to.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Reconciler matches and merges two record sets.
type Reconciler interface {
	// Match joins target records to source records on the configured keys.
	Match(ctx context.Context, source, target []records.Record) ([]records.Pair, MatchStats, error)

	// Merge fills empty target fields of each pair from its source record.
	Merge(ctx context.Context, pairs []records.Pair) (MergeStats, error)

	// Reconcile runs Match followed by Merge.
	Reconcile(ctx context.Context, source, target []records.Record) (*Result, error)
}

// Result bundles the pairs and statistics of a Reconcile call.
type Result struct {
	Pairs []records.Pair
	Match MatchStats
	Merge MergeStats
}

type reconciler struct {
	keys   mapping.Keys
	fields []mapping.Field
	logger *zerolog.Logger
}

// New creates a Reconciler. Without options it uses the default schema's
// keys and field mapping.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		keys:   options.keys,
		fields: options.fields,
		logger: options.logger,
	}, nil
}

func (r *reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// Match joins target records to source records on the configured keys.
func (r *reconciler) Match(ctx context.Context, source, target []records.Record) ([]records.Pair, MatchStats, error) {
	pairs, stats, err := Match(source, target, r.keys)
	if err != nil {
		return nil, stats, err
	}

	r.log(ctx).Info().
		Str("source_key", r.keys.Source).
		Str("target_key", r.keys.Target).
		Int("matched", stats.Matched).
		Int("unmatched", stats.Unmatched).
		Int("duplicate_keys", stats.DuplicateKeys).
		Msg("Matched records")
	return pairs, stats, nil
}

// Merge fills empty target fields of each pair from its source record.
func (r *reconciler) Merge(ctx context.Context, pairs []records.Pair) (MergeStats, error) {
	stats, err := Merge(r.fields, pairs)
	if err != nil {
		return stats, err
	}

	r.log(ctx).Info().
		Int("pairs", stats.Pairs).
		Int("filled", stats.FieldsFilled).
		Int("kept", stats.FieldsKept).
		Msg("Merged source fields into target")
	return stats, nil
}

// Reconcile runs Match followed by Merge.
func (r *reconciler) Reconcile(ctx context.Context, source, target []records.Record) (*Result, error) {
	pairs, matchStats, err := r.Match(ctx, source, target)
	if err != nil {
		return nil, err
	}
	mergeStats, err := r.Merge(ctx, pairs)
	if err != nil {
		return nil, err
	}
	return &Result{Pairs: pairs, Match: matchStats, Merge: mergeStats}, nil
}
