package normalize

import (
	"strings"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
)

// Names formats person names against a suffix vocabulary.
type Names struct {
	suffixes map[string]struct{}
}

// NewNames returns a formatter recognizing the given suffix tokens. Matching
// is exact and case sensitive.
func NewNames(suffixes []string) *Names {
	n := &Names{suffixes: make(map[string]struct{}, len(suffixes))}
	for _, s := range suffixes {
		n.suffixes[s] = struct{}{}
	}
	return n
}

var defaultNames = NewNames(mapping.DefaultSuffixes)

// FormatName formats name with the default suffix vocabulary.
func FormatName(name string) string {
	return defaultNames.Format(name)
}

// IsSuffix reports whether token is in the vocabulary.
func (n *Names) IsSuffix(token string) bool {
	_, ok := n.suffixes[token]
	return ok
}

// Format rewrites one name as "Last, First". The empty string means the name
// could not be formatted and should be dropped.
//
//	"John Smith"             -> "Smith, John"
//	"Mary Jane Watson"       -> "Watson, Mary Jane"
//	"Martin Luther King Jr." -> "King, Martin Luther, Jr."
//	"Smith (attributed)"     -> ""
//	"Madonna"                -> "Madonna"
//
// Repeated tokens are resolved by position: the last name is the token at
// its position, not the first token with the same text.
func (n *Names) Format(name string) string {
	tokens := strings.Fields(name)

	switch {
	case len(tokens) < 2:
		return name
	case len(tokens) == 2:
		if annotated(tokens[1]) {
			return ""
		}
		return tokens[1] + ", " + tokens[0]
	}

	s := n.suffixIndex(tokens)
	switch {
	case s == 0:
		// No token precedes the suffix, so there is no last name to pick.
		return ""
	case s > 0:
		return withSuffix(tokens, s)
	}

	last := tokens[len(tokens)-1]
	if annotated(last) {
		return ""
	}
	return last + ", " + strings.Join(tokens[:len(tokens)-1], " ")
}

// suffixIndex returns the position of the first suffix token, or -1.
func (n *Names) suffixIndex(tokens []string) int {
	for i, t := range tokens {
		if n.IsSuffix(t) {
			return i
		}
	}
	return -1
}

// withSuffix formats tokens whose suffix sits at s >= 1. The token before the
// suffix is the last name; the rest is split around the suffix and the part
// before it gets a trailing comma, even when that part is empty.
func withSuffix(tokens []string, s int) string {
	last := tokens[s-1]

	rest := make([]string, 0, len(tokens)-1)
	rest = append(rest, tokens[:s-1]...)
	rest = append(rest, tokens[s:]...)

	// The suffix moved one slot left when the last name was removed.
	before := strings.Join(rest[:s-1], " ") + ","
	after := strings.Join(rest[s-1:], " ")
	return last + ", " + before + " " + after
}

// annotated reports whether a token closes or opens a parenthetical, as in
// "(attributed)".
func annotated(token string) bool {
	return strings.HasSuffix(token, "(") || strings.HasSuffix(token, ")")
}

// List formats every name of a pipe-delimited list. Names that format to the
// empty string are left out of the result; the non-empty ones among them are
// returned in dropped, in input order.
func (n *Names) List(value string) (formatted string, dropped []string) {
	parts := strings.Split(value, constants.ValueDelimiter)
	kept := make([]string, 0, len(parts))
	for _, raw := range parts {
		f := n.Format(raw)
		if f == "" {
			if raw != "" {
				dropped = append(dropped, raw)
			}
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, constants.ValueDelimiter), dropped
}
