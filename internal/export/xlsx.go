package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// sheetName matches the sheet name spreadsheet tools give a new workbook.
const sheetName = "Sheet1"

// WriteXLSX writes t as a single-sheet workbook: a header row followed by
// one row per record. Every cell is written as text.
func WriteXLSX(w io.Writer, t *records.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	stream, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	if err := stream.SetRow("A1", cells(t.Columns)); err != nil {
		return err
	}
	for i := range t.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := stream.SetRow(cell, cells(t.Row(i))); err != nil {
			return err
		}
	}
	if err := stream.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
