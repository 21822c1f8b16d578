// Package normalize rewrites multi-valued JStore fields into the form the
// JStore importer expects: pipe-delimited lists, with person names as
// "Last, First [suffix]".
package normalize

import (
	"strings"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
)

// Delimiters replaces every tight comma in s with the list delimiter. A comma
// is tight when the characters on both sides exist and neither is a space.
// Commas at either end of s, or next to a space, are kept.
//
// Neighbors are read from s itself, so the result does not depend on scan
// order, and running Delimiters on its own output changes nothing.
func Delimiters(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i, r := range runes {
		if r == ',' && isTight(runes, i) {
			b.WriteString(constants.ValueDelimiter)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isTight(runes []rune, i int) bool {
	if i == 0 || i == len(runes)-1 {
		return false
	}
	return runes[i-1] != ' ' && runes[i+1] != ' '
}
