// Package progress shows a progress bar over the stages of a pipeline run.
package progress

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/pipeline"
)

// Bar is the subset of progressbar used here.
type Bar interface {
	Add(int) error
	Describe(string)
	Finish() error
}

// StageBar advances one step per completed pipeline stage.
type StageBar struct {
	bar Bar
}

// NewStageBar creates a bar writing to w, sized for a full pipeline run.
func NewStageBar(w io.Writer) *StageBar {
	return &StageBar{
		bar: progressbar.NewOptions(len(pipeline.Stages()),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("reconciling"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(20),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

// newStageBarWith wraps an existing bar.
func newStageBarWith(bar Bar) *StageBar {
	return &StageBar{bar: bar}
}

// Advance has the pipeline.Hook signature. It names the completed stage and
// moves the bar one step.
func (s *StageBar) Advance(snap pipeline.Snapshot) error {
	s.bar.Describe(snap.Stage.String())
	return s.bar.Add(1)
}

// Finish completes the bar, for runs that stop early.
func (s *StageBar) Finish() error {
	return s.bar.Finish()
}
