package pipeline

// Stage names a point in a run at which hooks fire.
type Stage string

// Stages in execution order.
const (
	StageLoaded     Stage = "loaded"
	StageMatched    Stage = "matched"
	StageMerged     Stage = "merged"
	StageCombined   Stage = "combined"
	StageNormalized Stage = "normalized"
	StageSubjects   Stage = "subjects"
)

// Stages returns every stage in execution order.
func Stages() []Stage {
	return []Stage{StageLoaded, StageMatched, StageMerged, StageCombined, StageNormalized, StageSubjects}
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}
