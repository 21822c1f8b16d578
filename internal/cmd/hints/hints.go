// Package hints prints actionable follow-ups after a command, such as how to
// inspect dropped names or shrink the final collection.
package hints

import (
	"fmt"
	"io"
	"strings"
)

// Hint is one piece of guidance, optionally with a command to run.
type Hint struct {
	Message string
	Command string
	Tags    []string
}

// New creates a hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a hint suggesting a command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// WithTags adds tags used for filtering.
func (h *Hint) WithTags(tags ...string) *Hint {
	h.Tags = append(h.Tags, tags...)
	return h
}

// HasTag reports whether the hint carries tag.
func (h *Hint) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// String renders the hint on one or two lines.
func (h *Hint) String() string {
	s := "hint: " + h.Message
	if h.Command != "" {
		s += "\n  run: " + h.Command
	}
	return s
}

// Context describes the command that just finished.
type Context struct {
	Command   string
	Succeeded bool
	Err       error

	// Run outcome, zero for other commands.
	Targets       int
	Unmatched     int
	DuplicateKeys int
	NamesDropped  int
	MatchedOnly   bool
}

// Provider generates hints for a context.
type Provider func(Context) []*Hint

// Registry collects providers and limits how many hints are shown.
type Registry struct {
	providers   []Provider
	maxHints    int
	excludeTags []string
}

// NewRegistry creates an empty registry showing at most maxHints hints.
// A non-positive maxHints means no limit.
func NewRegistry(maxHints int) *Registry {
	return &Registry{maxHints: maxHints}
}

// Register adds a provider.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Exclude drops hints carrying any of tags.
func (r *Registry) Exclude(tags ...string) {
	r.excludeTags = append(r.excludeTags, tags...)
}

// Hints returns the hints for ctx in provider order.
func (r *Registry) Hints(ctx Context) []*Hint {
	var out []*Hint
	for _, p := range r.providers {
	next:
		for _, h := range p(ctx) {
			for _, tag := range r.excludeTags {
				if h.HasTag(tag) {
					continue next
				}
			}
			out = append(out, h)
		}
	}
	if r.maxHints > 0 && len(out) > r.maxHints {
		out = out[:r.maxHints]
	}
	return out
}

// Write prints hints to w separated by blank lines, preceded by one blank
// line. Nothing is written when there are no hints.
func Write(w io.Writer, hints []*Hint) error {
	if len(hints) == 0 {
		return nil
	}
	lines := make([]string, len(hints))
	for i, h := range hints {
		lines[i] = h.String()
	}
	_, err := fmt.Fprintf(w, "\n%s\n", strings.Join(lines, "\n\n"))
	return err
}
