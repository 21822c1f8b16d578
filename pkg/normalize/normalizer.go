package normalize

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Stats describes one Normalizer.Records call.
type Stats struct {
	Records         int
	FieldsRewritten int
	NamesDropped    int
}

// Normalizer applies delimiter and name normalization to the multi-valued
// fields of a schema.
type Normalizer struct {
	multiValued []string
	people      string
	names       *Names
	logger      *zerolog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger. Without it the logger is taken from the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a Normalizer for schema.
func New(schema *mapping.Schema, opts ...Option) (*Normalizer, error) {
	if schema == nil {
		return nil, errors.NewValidationError("schema", nil, "cannot be nil")
	}
	n := &Normalizer{
		multiValued: schema.MultiValued,
		people:      schema.People,
		names:       NewNames(schema.Suffixes),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Records normalizes recs in place. Each multi-valued field a record carries
// gets its tight commas turned into pipes; the people field is then
// reformatted name by name. Every other field is left as it was.
func (n *Normalizer) Records(ctx context.Context, recs []records.Record) Stats {
	log := n.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	stats := Stats{Records: len(recs)}
	for i, r := range recs {
		for _, field := range n.multiValued {
			value, ok := r[field]
			if !ok {
				continue
			}

			out := Delimiters(value)
			if field == n.people {
				var dropped []string
				out, dropped = n.names.List(out)
				for _, name := range dropped {
					log.Debug().
						Int("record", i).
						Str("field", field).
						Str("name", name).
						Msg("Dropped unformattable name")
				}
				stats.NamesDropped += len(dropped)
			}

			if out != value {
				r[field] = out
				stats.FieldsRewritten++
			}
		}
	}

	log.Info().
		Int("records", stats.Records).
		Int("rewritten", stats.FieldsRewritten).
		Int("names_dropped", stats.NamesDropped).
		Msg("Normalized multi-valued fields")
	return stats
}
