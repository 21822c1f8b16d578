// Package run implements the run command, which executes the whole
// Cortex to JStore pipeline and writes every stage to the output directory.
package run

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/cmd/hints"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/cmd/output"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/export"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/progress"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/sources"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/pipeline"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Flags holds the run command's flags.
type Flags struct {
	Cortex       string
	JStore       string
	OutputDir    string
	Mapping      string
	MatchedOnly  bool
	YAML         bool
	Progress     bool
	CleanHeaders bool
	Provenance   bool
	HideHints    []string
}

// Summary is printed after a successful run.
type Summary struct {
	RunID          string `json:"run_id" yaml:"run_id"`
	SourceRecords  int    `json:"source_records" yaml:"source_records"`
	TargetRecords  int    `json:"target_records" yaml:"target_records"`
	Matched        int    `json:"matched" yaml:"matched"`
	Unmatched      int    `json:"unmatched" yaml:"unmatched"`
	DuplicateKeys  int    `json:"duplicate_keys" yaml:"duplicate_keys"`
	FieldsFilled   int    `json:"fields_filled" yaml:"fields_filled"`
	FieldsKept     int    `json:"fields_kept" yaml:"fields_kept"`
	NamesDropped   int    `json:"names_dropped" yaml:"names_dropped"`
	FinalRecords   int    `json:"final_records" yaml:"final_records"`
	Subjects       int    `json:"subjects" yaml:"subjects"`
	Changes        int    `json:"changes" yaml:"changes"`
	RecordsChanged int    `json:"records_changed" yaml:"records_changed"`
	FilesWritten   int    `json:"files_written" yaml:"files_written"`
	OutputDir      string `json:"output_dir" yaml:"output_dir"`
	Elapsed        string `json:"elapsed" yaml:"elapsed"`
}

// NewCommand creates the run command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := app.RunDefaults()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match, merge and normalize a Cortex export into a JStore export",
		Long: `Run joins Cortex records to JStore records on file name, fills empty
JStore fields from the matched Cortex record, normalizes delimited and
personal-name fields, and collects the local subjects.

Every stage is written to the output directory:

  cortex.json, jstore.json      the inputs as read
  matches.json                  matched pairs before the merge
  combined.json                 matched pairs after the merge
  nsjstore.json                 the final collection before normalization
  finaljstore.json/.xlsx        the final collection
  localsubjects.json/.xlsx      distinct local subjects
  provenance.json               every field change, with --provenance`,
		Example: `  cortex2jstore run
  cortex2jstore run --cortex export.csv --jstore jstore.xlsx --output-dir out
  cortex2jstore run --mapping mapping.yaml --matched-only --yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Cortex, "cortex", orDefault(defaults.CortexPath, constants.DefaultCortexPath), "Cortex export (csv, xlsx or json)")
	cmd.Flags().StringVar(&flags.JStore, "jstore", orDefault(defaults.JStorePath, constants.DefaultJStorePath), "JStore export (csv, xlsx or json)")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", orDefault(defaults.OutputDir, constants.DefaultOutputDir), "directory for stage outputs")
	cmd.Flags().StringVar(&flags.Mapping, "mapping", defaults.MappingPath, "field mapping YAML (default built-in)")
	cmd.Flags().BoolVar(&flags.MatchedOnly, "matched-only", defaults.MatchedOnly, "keep only matched JStore records in the final collection")
	cmd.Flags().BoolVar(&flags.YAML, "yaml", defaults.WriteYAML, "also write a YAML copy of every JSON output")
	cmd.Flags().BoolVar(&flags.Progress, "progress", defaults.Progress, "show a progress bar on stderr")
	cmd.Flags().BoolVar(&flags.CleanHeaders, "clean-headers", true, "strip BOMs, quotes and qualifiers from Cortex headers")
	cmd.Flags().BoolVar(&flags.Provenance, "provenance", false, "record every field change in provenance.json")
	cmd.Flags().StringSliceVar(&flags.HideHints, "hide-hints", nil, "hide hints with these tags (warning, names, matching)")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	logger := app.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)

	schema, err := app.Schema(flags.Mapping)
	if err != nil {
		return err
	}

	source, err := sources.Read(ctx, flags.Cortex)
	if err != nil {
		return err
	}
	if flags.CleanHeaders {
		sources.CleanCortexHeaders(source)
	}

	target, err := sources.Read(ctx, flags.JStore)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(flags.OutputDir,
		export.WithYAML(flags.YAML),
		export.WithLogger(logger),
	)
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMatchedOnly(flags.MatchedOnly),
		pipeline.WithHook(exporter.Export),
	}

	var tracker provenance.Tracker
	if flags.Provenance {
		tracker = provenance.NewTracker(true)
		opts = append(opts, pipeline.WithProvenance(tracker))
	}

	var bar *progress.StageBar
	if flags.Progress {
		bar = progress.NewStageBar(cmd.ErrOrStderr())
		opts = append(opts, pipeline.WithHook(bar.Advance))
	}

	p, err := pipeline.New(schema, opts...)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, source, target)
	if err != nil {
		if bar != nil {
			_ = bar.Finish()
		}
		return err
	}

	summary := Summary{
		RunID:          result.RunID,
		SourceRecords:  result.Match.Sources,
		TargetRecords:  result.Match.Targets,
		Matched:        result.Match.Matched,
		Unmatched:      result.Match.Unmatched,
		DuplicateKeys:  result.Match.DuplicateKeys,
		FieldsFilled:   result.Merge.FieldsFilled,
		FieldsKept:     result.Merge.FieldsKept,
		NamesDropped:   result.Normalize.NamesDropped,
		FinalRecords:   result.Final.Len(),
		Subjects:       result.Subjects.Len(),
		Changes:        len(result.Changes),
		RecordsChanged: changedRecords(tracker, result.Final, schema.Keys.Target),
		FilesWritten:   len(exporter.Written()),
		OutputDir:      flags.OutputDir,
		Elapsed:        result.Elapsed().Round(time.Millisecond).String(),
	}

	format = output.DetectFormat(string(format))
	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if format != output.FormatTable {
		return nil
	}

	registry := hints.Default()
	registry.Exclude(flags.HideHints...)
	return hints.Write(cmd.ErrOrStderr(), registry.Hints(hints.Context{
		Command:       cmd.Name(),
		Succeeded:     true,
		Targets:       result.Match.Targets,
		Unmatched:     result.Match.Unmatched,
		DuplicateKeys: result.Match.DuplicateKeys,
		NamesDropped:  result.Normalize.NamesDropped,
		MatchedOnly:   flags.MatchedOnly,
	}))
}

// changedRecords counts the final records with at least one tracked change.
func changedRecords(tracker provenance.Tracker, final *records.Table, key string) int {
	if tracker == nil || final == nil {
		return 0
	}
	n := 0
	for _, r := range final.Records {
		if len(tracker.FindByRecord(r[key])) > 0 {
			n++
		}
	}
	return n
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
