package pipeline

import (
	"time"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/normalize"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/reconciler"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

// Result is the outcome of a successful run.
type Result struct {
	RunID     string
	Final     *records.Table
	Pairs     []records.Pair
	Subjects  subjects.Set
	Match     reconciler.MatchStats
	Merge     reconciler.MergeStats
	Normalize normalize.Stats

	// Changes lists the field rewrites of the run when provenance is tracked.
	Changes []provenance.Change

	// Durations holds the time spent in each stage, hooks included.
	Durations map[Stage]time.Duration
	Started   time.Time
	Finished  time.Time
}

// Elapsed returns the wall time of the whole run.
func (r *Result) Elapsed() time.Duration {
	return r.Finished.Sub(r.Started)
}
