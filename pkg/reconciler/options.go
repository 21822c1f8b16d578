package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
)

// options configures a reconciler.
type options struct {
	keys   mapping.Keys
	fields []mapping.Field
	logger *zerolog.Logger
}

func defaultOptions() *options {
	schema := mapping.Default()
	return &options{
		keys:   schema.Keys,
		fields: schema.Fields,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithSchema takes keys and field mapping from schema.
func WithSchema(schema *mapping.Schema) Option {
	return func(o *options) error {
		if schema == nil {
			return &errors.ValidationError{
				Field:   "schema",
				Message: "cannot be nil",
			}
		}
		o.keys = schema.Keys
		o.fields = schema.Fields
		return nil
	}
}

// WithKeys sets the join-key fields.
func WithKeys(keys mapping.Keys) Option {
	return func(o *options) error {
		if keys.Source == "" || keys.Target == "" {
			return &errors.ValidationError{
				Field:   "keys",
				Value:   keys,
				Message: "source and target keys are required",
			}
		}
		o.keys = keys
		return nil
	}
}

// WithFields sets the field mapping used by Merge.
func WithFields(fields []mapping.Field) Option {
	return func(o *options) error {
		o.fields = fields
		return nil
	}
}

// WithLogger sets the logger. Without it the logger is taken from the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
