package sources

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// ReadCSV reads a CSV stream whose first row is the header. A leading UTF-8
// byte-order mark is removed. Rows shorter than the header are padded with
// empty strings; a row with more cells than the header is an error.
func ReadCSV(r io.Reader, name string) (*records.Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return records.NewTable(name, nil), nil
	}
	if err != nil {
		return nil, csvError(err)
	}

	table := records.NewTable(name, uniqueColumns(header))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &errors.ParseError{
				Format:  string(FormatCSV),
				Line:    line,
				Message: fmt.Sprintf("row has %d cells, header has %d", len(row), len(header)),
			}
		}
		table.Append(rowRecord(header, row))
	}
	return table, nil
}

func csvError(err error) error {
	pe := errors.NewParseError(string(FormatCSV), "", err.Error(), err)
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		pe.Line = ce.Line
		pe.Message = ce.Err.Error()
	}
	return pe
}
