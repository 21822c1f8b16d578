// Package mapping describes how the Cortex export feeds the JStore schema:
// which fields join the two sets, which target fields may be filled from
// which source fields, and which target fields hold delimited lists.
package mapping

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
)

// DefaultSuffixes is the generational suffix vocabulary recognized by the
// name formatter. Matching is exact, so "Jr" without the dot is not a suffix.
var DefaultSuffixes = []string{"Jr.", "Sr.", "II.", "III.", "IV.", "V.", "VI.", "VII.", "VIII.", "IX.", "X."}

// Keys names the join-key field of each record set.
type Keys struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Field maps one target field to the source field that may fill it.
type Field struct {
	Target string `yaml:"target"`
	Source string `yaml:"source"`
}

// Schema is the complete mapping configuration for a run. It is fixed at
// startup and never mutated by the pipeline.
type Schema struct {
	Keys        Keys     `yaml:"keys"`
	Fields      []Field  `yaml:"fields"`
	MultiValued []string `yaml:"multi_valued"`
	People      string   `yaml:"people"`
	Subjects    string   `yaml:"subjects"`
	Suffixes    []string `yaml:"suffixes"`
}

// Default returns the Vanderbilt Cortex to JStore schema.
func Default() *Schema {
	return &Schema{
		Keys: Keys{
			Source: constants.CortexKeyField,
			Target: constants.JStoreKeyField,
		},
		Fields: []Field{
			{Target: constants.JStoreTitleField, Source: constants.CortexTitleField},
			{Target: constants.JStoreDescriptionField, Source: constants.CortexDescriptionField},
		},
		MultiValued: []string{
			constants.JStorePeopleField,
			constants.JStoreLocalSubjectsField,
		},
		People:   constants.JStorePeopleField,
		Subjects: constants.JStoreLocalSubjectsField,
		Suffixes: slices.Clone(DefaultSuffixes),
	}
}

// Load reads a schema from a YAML file. Keys the file leaves out keep their
// default values.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML schema document over the defaults and validates it.
// name is only used in error messages.
func Parse(data []byte, name string) (*Schema, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the schema for settings no run could succeed with.
func (s *Schema) Validate() error {
	if s.Keys.Source == "" {
		return errors.NewValidationError("keys.source", s.Keys.Source, "cannot be empty")
	}
	if s.Keys.Target == "" {
		return errors.NewValidationError("keys.target", s.Keys.Target, "cannot be empty")
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Target == "" || f.Source == "" {
			return errors.NewValidationError(fmt.Sprintf("fields[%d]", i), f, "target and source are required")
		}
		if seen[f.Target] {
			return errors.NewValidationError(fmt.Sprintf("fields[%d]", i), f.Target, "duplicate target field")
		}
		seen[f.Target] = true
	}

	for i, f := range s.MultiValued {
		if slices.Contains(s.MultiValued[:i], f) {
			return errors.NewValidationError(fmt.Sprintf("multi_valued[%d]", i), f, "duplicate field")
		}
	}
	if s.People != "" && !s.IsMultiValued(s.People) {
		return errors.NewValidationError("people", s.People, "must be listed in multi_valued")
	}
	for i, suffix := range s.Suffixes {
		if suffix == "" {
			return errors.NewValidationError(fmt.Sprintf("suffixes[%d]", i), suffix, "cannot be empty")
		}
	}
	return nil
}

// IsMultiValued reports whether field holds a delimited list.
func (s *Schema) IsMultiValued(field string) bool {
	return slices.Contains(s.MultiValued, field)
}
