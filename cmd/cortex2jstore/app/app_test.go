package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

func TestApp_WithConfigNil(t *testing.T) {
	if _, err := New("1.0.0", "", "", "", WithConfig(nil)); err == nil {
		t.Error("New() with nil config should fail")
	}
}

// TestApp_Schema verifies the mapping fallback chain.
func TestApp_Schema(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, "configured.yaml")
	explicit := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(configured, []byte("subjects: Configured\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(explicit, []byte("subjects: Explicit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		mappingPath string
		arg         string
		want        string
	}{
		{name: "built-in", want: constants.JStoreLocalSubjectsField},
		{name: "configured file", mappingPath: configured, want: "Configured"},
		{name: "explicit path wins", mappingPath: configured, arg: explicit, want: "Explicit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := New("1.0.0", "", "", "", WithConfig(&Config{MappingPath: tt.mappingPath}))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			schema, err := app.Schema(tt.arg)
			if err != nil {
				t.Fatalf("Schema() failed: %v", err)
			}
			if schema.Subjects != tt.want {
				t.Errorf("Schema().Subjects = %q, want %q", schema.Subjects, tt.want)
			}
		})
	}
}

func TestApp_RunDefaults(t *testing.T) {
	config := &Config{
		CortexPath:  "in/cortex.csv",
		JStorePath:  "in/jstore.xlsx",
		OutputDir:   "out",
		MatchedOnly: true,
		WriteYAML:   true,
	}
	app, err := New("1.0.0", "", "", "", WithConfig(config))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	got := app.RunDefaults()
	if got.CortexPath != "in/cortex.csv" || got.JStorePath != "in/jstore.xlsx" || got.OutputDir != "out" {
		t.Errorf("RunDefaults() paths = %+v", got)
	}
	if !got.MatchedOnly || !got.WriteYAML || got.Progress {
		t.Errorf("RunDefaults() switches = %+v", got)
	}
}

func TestApp_VersionCommand(t *testing.T) {
	app, err := New("1.2.3", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	if !strings.Contains(out.String(), "cortex2jstore version 1.2.3") {
		t.Errorf("version output = %q", out.String())
	}
	if !strings.Contains(out.String(), "commit: abc123") {
		t.Errorf("version output missing commit: %q", out.String())
	}
}

// TestApp_GlobalFlags verifies that persistent flags reach subcommands.
func TestApp_GlobalFlags(t *testing.T) {
	app, err := New("1.0.0", "", "", "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"-q", "-o", "json", "names", "John Smith"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("names failed: %v", err)
	}

	if app.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %q, want json", app.OutputFormat())
	}
	if !app.Config().Quiet {
		t.Error("Quiet not set from -q")
	}

	var got []map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0]["formatted"] != "Smith, John" {
		t.Errorf("names output = %v", got)
	}
}

func TestApp_CommandsRegistered(t *testing.T) {
	app, err := New("1.0.0", "", "", "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	root := app.createRootCommand()
	for _, name := range []string{"run", "subjects", "names", "convert", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, errors.NewFormatError("jstore.xls", "legacy Excel workbooks are not supported"))
	out := buf.String()
	if !strings.HasPrefix(out, "jstore.xls") {
		t.Errorf("output should start with the error:\n%s", out)
	}
	if !strings.Contains(out, "hint: Save the workbook as .xlsx or .csv") {
		t.Errorf("output should carry the format hint:\n%s", out)
	}

	buf.Reset()
	writeError(&buf, errors.NewValidationError("format", "xml", "unknown output format"))
	if strings.Contains(buf.String(), "hint:") {
		t.Errorf("unexpected hint:\n%s", buf.String())
	}
}
