package reconciler

import "fmt"

// MatchStats describes the outcome of a join.
type MatchStats struct {
	Sources       int
	Targets       int
	Matched       int
	Unmatched     int
	DuplicateKeys int
}

// String returns a one-line summary.
func (s MatchStats) String() string {
	return fmt.Sprintf("%d of %d target records matched (%d source records, %d duplicate keys)",
		s.Matched, s.Targets, s.Sources, s.DuplicateKeys)
}

// MergeStats describes the outcome of a merge.
type MergeStats struct {
	// Pairs is the number of matched pairs visited.
	Pairs int

	// FieldsFilled counts empty target fields that received a non-empty source value.
	FieldsFilled int

	// FieldsKept counts target fields left alone because they already held data.
	FieldsKept int
}

// String returns a one-line summary.
func (s MergeStats) String() string {
	return fmt.Sprintf("%d fields filled, %d kept across %d pairs", s.FieldsFilled, s.FieldsKept, s.Pairs)
}
