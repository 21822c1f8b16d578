package export

import (
	"encoding/csv"
	"io"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// WriteCSV writes t with a header row.
func WriteCSV(w io.Writer, t *records.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for i := range t.Records {
		if err := cw.Write(t.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
