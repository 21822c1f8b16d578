// Package sources reads record files into tables. CSV, XLSX and JSON files
// are supported; the format is chosen by file extension.
package sources

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// Format identifies a record file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xls":
		return "", errors.NewFormatError(path, "legacy .xls workbooks are not supported, save as .xlsx or .csv")
	default:
		return "", errors.NewFormatError(path, "unsupported file extension")
	}
}

// TableName derives a table name from a file path: the base name without
// its extension.
func TableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read loads the record file at path. YAML is an output format only and is
// rejected here.
func Read(ctx context.Context, path string) (*records.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		return nil, errors.NewFormatError(path, "yaml files can be written but not read")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	name := TableName(path)
	var table *records.Table
	switch format {
	case FormatCSV:
		table, err = ReadCSV(bytes.NewReader(data), name)
	case FormatXLSX:
		table, err = ReadXLSX(bytes.NewReader(data), name)
	case FormatJSON:
		table, err = ReadJSON(data, name)
	}
	if err != nil {
		return nil, withFile(err, path)
	}

	logging.FromContext(logging.WithFile(ctx, path)).Info().
		Str("format", string(format)).
		Int("records", table.Len()).
		Int("columns", len(table.Columns)).
		Msg("Read record file")
	return table, nil
}

// withFile fills in the file name of a parse error raised by a reader that
// only saw a stream.
func withFile(err error, path string) error {
	var pe *errors.ParseError
	if errors.As(err, &pe) && pe.File == "" {
		pe.File = path
	}
	return err
}

// uniqueColumns drops repeated header names, keeping the first position.
func uniqueColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	out := make([]string, 0, len(header))
	for _, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// rowRecord zips header and row. Missing trailing cells become empty strings;
// with a repeated header name the later cell wins.
func rowRecord(header, row []string) records.Record {
	r := make(records.Record, len(header))
	for i, h := range header {
		if i < len(row) {
			r[h] = row[i]
		} else {
			r[h] = ""
		}
	}
	return r
}
