package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/vanderbilt-libraries/cortex2jstore/internal/sources"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// WriteTable writes t to path in the format implied by its extension.
func WriteTable(path string, t *records.Table) error {
	format, err := sources.DetectFormat(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		switch format {
		case sources.FormatJSON:
			return WriteJSON(w, Table(t))
		case sources.FormatYAML:
			return WriteYAML(w, Table(t))
		case sources.FormatXLSX:
			return WriteXLSX(w, t)
		default:
			return WriteCSV(w, t)
		}
	})
}

// WriteDocument writes a document built by Table, Pairs or Subjects to path
// as JSON or YAML.
func WriteDocument(path string, doc any) error {
	format, err := sources.DetectFormat(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		switch format {
		case sources.FormatJSON:
			return WriteJSON(w, doc)
		case sources.FormatYAML:
			return WriteYAML(w, doc)
		default:
			return errors.NewValidationError("path", path, "documents are written as json or yaml")
		}
	})
}

// writeFile renders into memory first so a failed render leaves no partial
// file behind.
func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if errors.IsValidationError(err) {
			return err
		}
		return errors.NewIOError("encode", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
