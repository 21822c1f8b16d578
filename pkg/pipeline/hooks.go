package pipeline

import (
	"sync"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

// Snapshot is the state of a run right after a stage completed. Which fields
// are set depends on the stage:
//
//	StageLoaded      Source, Target
//	StageMatched     Pairs
//	StageMerged      Pairs
//	StageCombined    Final
//	StageNormalized  Final
//	StageSubjects    Final, Subjects, Changes
//
// Changes is only set when the pipeline tracks provenance.
//
// Tables and records are shared with the run, so a hook must not modify them.
type Snapshot struct {
	RunID    string
	Stage    Stage
	Source   *records.Table
	Target   *records.Table
	Pairs    []records.Pair
	Final    *records.Table
	Subjects subjects.Set
	Changes  []provenance.Change
}

// Hook is called after a stage completes. A non-nil error aborts the run.
type Hook func(Snapshot) error

// hooks holds registered callbacks in registration order.
type hooks struct {
	mu sync.RWMutex
	fn []Hook
}

func (h *hooks) add(fn Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = append(h.fn, fn)
}

// trigger runs every hook for snap, stopping at the first error.
func (h *hooks) trigger(snap Snapshot) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.fn {
		if err := fn(snap); err != nil {
			return err
		}
	}
	return nil
}
