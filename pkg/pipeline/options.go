package pipeline

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
)

type options struct {
	logger      *zerolog.Logger
	clock       clockwork.Clock
	hooks       []Hook
	matchedOnly bool
	tracker     provenance.Tracker
}

func defaultOptions() *options {
	return &options{
		clock: clockwork.NewRealClock(),
	}
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

// WithLogger sets the logger. Without it the logger is taken from the context
// passed to Run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithClock sets the clock used to time stages.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.clock = clock
		return nil
	}
}

// WithHook registers a callback fired after every stage. Hooks run in the
// order they were registered.
func WithHook(hook Hook) Option {
	return func(o *options) error {
		if hook == nil {
			return &errors.ValidationError{Field: "hook", Message: "cannot be nil"}
		}
		o.hooks = append(o.hooks, hook)
		return nil
	}
}

// WithMatchedOnly restricts the final collection to target records that found
// a source match. By default every target record is kept.
func WithMatchedOnly(matchedOnly bool) Option {
	return func(o *options) error {
		o.matchedOnly = matchedOnly
		return nil
	}
}

// WithProvenance records every field the merge and normalize stages change
// in tracker.
func WithProvenance(tracker provenance.Tracker) Option {
	return func(o *options) error {
		if tracker == nil {
			return &errors.ValidationError{Field: "tracker", Message: "cannot be nil"}
		}
		o.tracker = tracker
		return nil
	}
}
