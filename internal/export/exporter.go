package export

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/pipeline"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Output file names, one set per stage.
const (
	CortexFile       = "cortex.json"
	JStoreFile       = "jstore.json"
	MatchesFile      = "matches.json"
	CombinedFile     = "combined.json"
	UnnormalizedFile = "nsjstore.json"
	FinalFile        = "finaljstore.json"
	FinalXLSXFile    = "finaljstore.xlsx"
	SubjectsFile     = "localsubjects.json"
	SubjectsXLSXFile = "localsubjects.xlsx"
	ProvenanceFile   = "provenance.json"
)

// Exporter writes a snapshot of every pipeline stage into a directory.
// Register Export as a pipeline hook.
type Exporter struct {
	dir    string
	yaml   bool
	logger *zerolog.Logger

	sourceColumns []string
	targetColumns []string
	written       []string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithYAML also writes a .yaml copy of every JSON file.
func WithYAML(enabled bool) ExporterOption {
	return func(e *Exporter) {
		e.yaml = enabled
	}
}

// WithLogger sets the logger. The default logger is used otherwise.
func WithLogger(logger *zerolog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string, opts ...ExporterOption) *Exporter {
	e := &Exporter{dir: dir, logger: logging.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Written returns the paths written so far, in order.
func (e *Exporter) Written() []string {
	return slices.Clone(e.written)
}

// Export writes the files belonging to snap's stage. It has the
// pipeline.Hook signature.
func (e *Exporter) Export(snap pipeline.Snapshot) error {
	switch snap.Stage {
	case pipeline.StageLoaded:
		e.sourceColumns = snap.Source.Columns
		e.targetColumns = snap.Target.Columns
		if err := e.document(CortexFile, Table(snap.Source)); err != nil {
			return err
		}
		return e.document(JStoreFile, Table(snap.Target))

	case pipeline.StageMatched:
		return e.document(MatchesFile, Pairs(snap.Pairs, e.targetColumns, e.sourceColumns))

	case pipeline.StageMerged:
		return e.document(CombinedFile, Pairs(snap.Pairs, e.targetColumns, e.sourceColumns))

	case pipeline.StageCombined:
		return e.document(UnnormalizedFile, Table(snap.Final))

	case pipeline.StageNormalized:
		if err := e.document(FinalFile, Table(snap.Final)); err != nil {
			return err
		}
		return e.table(FinalXLSXFile, snap.Final)

	case pipeline.StageSubjects:
		if err := e.document(SubjectsFile, Subjects(snap.Subjects)); err != nil {
			return err
		}
		if err := e.table(SubjectsXLSXFile, snap.Subjects.Table()); err != nil {
			return err
		}
		if snap.Changes != nil {
			return e.document(ProvenanceFile, Changes(snap.Changes))
		}
		return nil
	}
	return nil
}

func (e *Exporter) document(name string, doc any) error {
	if err := e.write(name, func(path string) error { return WriteDocument(path, doc) }); err != nil {
		return err
	}
	if !e.yaml {
		return nil
	}
	yamlName := strings.TrimSuffix(name, filepath.Ext(name)) + ".yaml"
	return e.write(yamlName, func(path string) error { return WriteDocument(path, doc) })
}

func (e *Exporter) table(name string, t *records.Table) error {
	return e.write(name, func(path string) error { return WriteTable(path, t) })
}

func (e *Exporter) write(name string, fn func(path string) error) error {
	path := filepath.Join(e.dir, name)
	if err := fn(path); err != nil {
		return err
	}
	e.written = append(e.written, path)
	e.logger.Debug().Str("file", path).Msg("Wrote stage output")
	return nil
}
