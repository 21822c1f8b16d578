package run

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
)

const cortexCSV = "\ufeff\"Original File Name|CoreField.OriginalFileName\",Title|CoreField.Title,Description / Data\n" +
	"img001.jpg,Portrait,Oil on canvas\n" +
	"img003.jpg,Landscape,\n"

const jstoreJSON = `[
  {
    "Filename": "img001.jpg",
    "Title[2071407]": "",
    "Description[2071422]": "Already described",
    "Vanderbilt People[2083840]": "Jane Q. Doe,John Smith",
    "Vanderbilt Local Subjects[2083876]": "Art,History"
  },
  {
    "Filename": "img002.jpg",
    "Title[2071407]": "",
    "Description[2071422]": "",
    "Vanderbilt People[2083840]": "Martin Luther King Jr.,Smith (attributed)",
    "Vanderbilt Local Subjects[2083876]": "History,Music"
  }
]`

func writeInputs(t *testing.T) (cortex, jstore string) {
	t.Helper()
	dir := t.TempDir()
	cortex = filepath.Join(dir, "cortex.csv")
	jstore = filepath.Join(dir, "jstore.json")
	require.NoError(t, os.WriteFile(cortex, []byte(cortexCSV), 0o644))
	require.NoError(t, os.WriteFile(jstore, []byte(jstoreJSON), 0o644))
	return cortex, jstore
}

func execute(t *testing.T, mock *application.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	cortex, jstore := writeInputs(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, &application.Mock{},
		"--cortex", cortex,
		"--jstore", jstore,
		"--output-dir", outDir,
	)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, 2, got.SourceRecords)
	assert.Equal(t, 2, got.TargetRecords)
	assert.Equal(t, 1, got.Matched)
	assert.Equal(t, 1, got.Unmatched)
	assert.Equal(t, 1, got.FieldsFilled)
	assert.Equal(t, 1, got.FieldsKept)
	assert.Equal(t, 1, got.NamesDropped)
	assert.Equal(t, 2, got.FinalRecords)
	assert.Equal(t, 3, got.Subjects)
	assert.Equal(t, 9, got.FilesWritten)
	assert.Equal(t, outDir, got.OutputDir)
	assert.Zero(t, got.Changes)
	assert.Zero(t, got.RecordsChanged)

	final, err := os.ReadFile(filepath.Join(outDir, "finaljstore.json"))
	require.NoError(t, err)
	assert.Contains(t, string(final), `"Title[2071407]": "Portrait"`)
	assert.Contains(t, string(final), `"Vanderbilt People[2083840]": "Doe, Jane Q.|Smith, John"`)
	assert.FileExists(t, filepath.Join(outDir, "localsubjects.xlsx"))
	assert.NoFileExists(t, filepath.Join(outDir, "finaljstore.yaml"))
}

func TestRunCommandMatchedOnlyAndYAML(t *testing.T) {
	cortex, jstore := writeInputs(t)
	outDir := t.TempDir()

	out, err := execute(t, &application.Mock{},
		"--cortex", cortex,
		"--jstore", jstore,
		"--output-dir", outDir,
		"--matched-only",
		"--yaml",
		"--provenance",
	)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.FinalRecords)
	assert.Equal(t, 2, got.Subjects)
	assert.FileExists(t, filepath.Join(outDir, "finaljstore.yaml"))
	assert.FileExists(t, filepath.Join(outDir, "matches.yaml"))
	assert.FileExists(t, filepath.Join(outDir, "provenance.json"))
	assert.Equal(t, 3, got.Changes)
	assert.Equal(t, 1, got.RecordsChanged)
}

func TestRunCommandDefaultsFromApp(t *testing.T) {
	cortex, jstore := writeInputs(t)
	outDir := t.TempDir()

	mock := &application.Mock{
		RunDefaultsFunc: func() app.RunDefaults {
			return app.RunDefaults{
				CortexPath:  cortex,
				JStorePath:  jstore,
				OutputDir:   outDir,
				MatchedOnly: true,
			}
		},
	}

	out, err := execute(t, mock)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.FinalRecords)
	assert.FileExists(t, filepath.Join(outDir, "finaljstore.xlsx"))
}

func TestRunCommandErrors(t *testing.T) {
	cortex, jstore := writeInputs(t)

	tests := []struct {
		name  string
		app   *application.Mock
		args  []string
		check func(error) bool
	}{
		{
			name:  "missing cortex file",
			app:   &application.Mock{},
			args:  []string{"--cortex", filepath.Join(t.TempDir(), "nope.csv"), "--jstore", jstore},
			check: errors.IsNotFound,
		},
		{
			name:  "unsupported jstore format",
			app:   &application.Mock{},
			args:  []string{"--cortex", cortex, "--jstore", "jstore.xls"},
			check: errors.IsValidationError,
		},
		{
			name: "invalid output format",
			app: &application.Mock{
				OutputFormatFunc: func() string { return "xml" },
			},
			args:  []string{"--cortex", cortex, "--jstore", jstore},
			check: errors.IsValidationError,
		},
		{
			name:  "headers left uncleaned",
			app:   &application.Mock{},
			args:  []string{"--cortex", cortex, "--jstore", jstore, "--clean-headers=false", "--output-dir", t.TempDir()},
			check: errors.IsMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.app, tt.args...)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestRunCommandTableHints(t *testing.T) {
	cortex, jstore := writeInputs(t)
	cmd := NewCommand(&application.Mock{OutputFormatFunc: func() string { return "table" }})
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--cortex", cortex, "--jstore", jstore, "--output-dir", t.TempDir()})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Fields Filled")
	assert.Contains(t, stderr.String(), "1 names could not be formatted")
	assert.Contains(t, stderr.String(), "1 of 2 JStore records had no Cortex match")

	t.Run("hidden tags", func(t *testing.T) {
		cmd := NewCommand(&application.Mock{OutputFormatFunc: func() string { return "table" }})
		var out, stderr bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"--cortex", cortex, "--jstore", jstore, "--output-dir", t.TempDir(),
			"--progress=false", "--hide-hints", "names",
		})
		require.NoError(t, cmd.Execute())

		assert.NotContains(t, stderr.String(), "names could not be formatted")
		assert.Contains(t, stderr.String(), "1 of 2 JStore records had no Cortex match")
	})
}
