package sources

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// ReadXLSX reads the first sheet of a workbook. The first row is the header;
// cells past the header width are ignored and missing cells read as empty
// strings. Cell values are taken as displayed.
func ReadXLSX(r io.Reader, name string) (*records.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse(string(FormatXLSX), "", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError(string(FormatXLSX), "", "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WrapParse(string(FormatXLSX), "", err)
	}
	if len(rows) == 0 {
		return records.NewTable(name, nil), nil
	}

	header := rows[0]
	table := records.NewTable(name, uniqueColumns(header))
	for _, row := range rows[1:] {
		if len(row) > len(header) {
			row = row[:len(header)]
		}
		table.Append(rowRecord(header, row))
	}
	return table, nil
}
