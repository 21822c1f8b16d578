// Package pipeline runs the Cortex to JStore reconciliation end to end:
// match, merge, collect the final JStore records, normalize them and gather
// the local subjects. Every stage finishes over the whole collection before
// the next one starts, and the first error ends the run.
package pipeline

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/normalize"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/reconciler"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

// FinalTableName names the table handed to hooks from StageCombined on.
const FinalTableName = "finaljstore"

// Pipeline is a configured reconciliation run. It can be reused, but not
// concurrently: a provenance tracker is cleared when each run starts.
type Pipeline struct {
	schema      *mapping.Schema
	reconciler  reconciler.Reconciler
	normalizer  *normalize.Normalizer
	logger      *zerolog.Logger
	clock       clockwork.Clock
	hooks       *hooks
	matchedOnly bool
	tracker     provenance.Tracker

	// mergeSources maps a target field to the source field merged into it.
	mergeSources map[string]string
}

// New validates schema and builds a pipeline for it.
func New(schema *mapping.Schema, opts ...Option) (*Pipeline, error) {
	if schema == nil {
		return nil, errors.NewValidationError("schema", nil, "cannot be nil")
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	rec, err := reconciler.New(reconciler.WithSchema(schema))
	if err != nil {
		return nil, err
	}
	norm, err := normalize.New(schema)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		schema:      schema,
		reconciler:  rec,
		normalizer:  norm,
		logger:      o.logger,
		clock:       o.clock,
		hooks:       &hooks{},
		matchedOnly: o.matchedOnly,
		tracker:     o.tracker,

		mergeSources: make(map[string]string, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		p.mergeSources[f.Target] = f.Source
	}
	for _, h := range o.hooks {
		p.hooks.add(h)
	}
	return p, nil
}

// Run reconciles target against source. Target records are modified in
// place; source records are only read.
func (p *Pipeline) Run(ctx context.Context, source, target *records.Table) (*Result, error) {
	if source == nil {
		return nil, errors.NewValidationError("source", nil, "cannot be nil")
	}
	if target == nil {
		return nil, errors.NewValidationError("target", nil, "cannot be nil")
	}

	if p.logger != nil {
		ctx = logging.WithLogger(ctx, p.logger)
	}
	if p.tracker != nil {
		p.tracker.Clear()
	}
	runID := xid.New().String()
	ctx = logging.WithRun(ctx, runID)

	res := &Result{
		RunID:     runID,
		Durations: make(map[Stage]time.Duration, len(Stages())),
		Started:   p.clock.Now(),
	}
	logging.FromContext(ctx).Info().
		Int("source_records", source.Len()).
		Int("target_records", target.Len()).
		Bool("matched_only", p.matchedOnly).
		Msg("Starting reconciliation")

	steps := []struct {
		stage Stage
		run   func(ctx context.Context) (Snapshot, error)
	}{
		{StageLoaded, func(context.Context) (Snapshot, error) {
			return Snapshot{Source: source, Target: target}, nil
		}},
		{StageMatched, func(ctx context.Context) (Snapshot, error) {
			pairs, stats, err := p.reconciler.Match(ctx, source.Records, target.Records)
			res.Pairs, res.Match = pairs, stats
			return Snapshot{Pairs: pairs}, err
		}},
		{StageMerged, func(ctx context.Context) (Snapshot, error) {
			targets := pairTargets(res.Pairs)
			before := p.snapshot(targets)
			stats, err := p.reconciler.Merge(ctx, res.Pairs)
			res.Merge = stats
			if err == nil {
				p.track(StageMerged, before, targets, func(f string) string { return p.mergeSources[f] })
			}
			return Snapshot{Pairs: res.Pairs}, err
		}},
		{StageCombined, func(context.Context) (Snapshot, error) {
			res.Final = p.finalTable(target, res.Pairs)
			return Snapshot{Final: res.Final}, nil
		}},
		{StageNormalized, func(ctx context.Context) (Snapshot, error) {
			before := p.snapshot(res.Final.Records)
			res.Normalize = p.normalizer.Records(ctx, res.Final.Records)
			p.track(StageNormalized, before, res.Final.Records, func(string) string { return "normalizer" })
			return Snapshot{Final: res.Final}, nil
		}},
		{StageSubjects, func(ctx context.Context) (Snapshot, error) {
			res.Subjects = subjects.Collect(res.Final.Records, p.schema.Subjects)
			logging.FromContext(ctx).Info().
				Str("field", p.schema.Subjects).
				Int("distinct", res.Subjects.Len()).
				Msg("Collected local subjects")
			if p.tracker != nil {
				res.Changes = p.tracker.Changes()
				logging.FromContext(ctx).Debug().
					Int("changes", p.tracker.Len()).
					Msg("Tracked field changes")
			}
			return Snapshot{Final: res.Final, Subjects: res.Subjects, Changes: res.Changes}, nil
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapStage(step.stage.String(), err)
		}

		start := p.clock.Now()
		stageCtx := logging.WithStage(ctx, step.stage.String())

		snap, err := step.run(stageCtx)
		if err != nil {
			return nil, errors.WrapStage(step.stage.String(), err)
		}
		snap.RunID = runID
		snap.Stage = step.stage
		if err := p.hooks.trigger(snap); err != nil {
			return nil, errors.WrapStage(step.stage.String(), err)
		}

		res.Durations[step.stage] = p.clock.Since(start)
		logging.FromContext(stageCtx).Debug().
			Dur("duration", res.Durations[step.stage]).
			Msg("Stage complete")
	}

	res.Finished = p.clock.Now()
	logging.FromContext(ctx).Info().
		Str("match", res.Match.String()).
		Str("merge", res.Merge.String()).
		Dur("elapsed", res.Elapsed()).
		Msg("Reconciliation complete")
	return res, nil
}

// finalTable returns the collection that is normalized and exported. It
// shares records with target.
func (p *Pipeline) finalTable(target *records.Table, pairs []records.Pair) *records.Table {
	if !p.matchedOnly {
		return target.Subset(FinalTableName, target.Records)
	}
	return target.Subset(FinalTableName, pairTargets(pairs))
}

// snapshot copies recs when provenance is tracked.
func (p *Pipeline) snapshot(recs []records.Record) []records.Record {
	if p.tracker == nil {
		return nil
	}
	out := make([]records.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}

// track records the differences between before and after, which are
// parallel slices.
func (p *Pipeline) track(stage Stage, before, after []records.Record, source func(field string) string) {
	if p.tracker == nil {
		return
	}
	for i, r := range after {
		p.tracker.Track(provenance.Diff(r[p.schema.Keys.Target], stage.String(), before[i], r, source)...)
	}
}

func pairTargets(pairs []records.Pair) []records.Record {
	out := make([]records.Record, len(pairs))
	for i, pair := range pairs {
		out[i] = pair.Target
	}
	return out
}
