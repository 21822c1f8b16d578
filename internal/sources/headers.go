package sources

import (
	"strings"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// mojibakeBOM is a UTF-8 byte-order mark that was decoded as Latin-1 and
// re-encoded, as found in some Cortex exports.
const mojibakeBOM = "\u00ef\u00bb\u00bf"

// CleanHeader normalizes one Cortex column name: byte-order marks and double
// quotes are removed and the internal qualifier after the first "|" is cut,
// so `"Title|CoreField.Title"` becomes `Title`.
func CleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	h = strings.ReplaceAll(h, mojibakeBOM, "")
	h = strings.ReplaceAll(h, `"`, "")
	h, _, _ = strings.Cut(h, constants.CortexQualifierDelimiter)
	return h
}

// CleanCortexHeaders rewrites the column names of t with CleanHeader and
// rekeys every record in place. When two columns clean to the same name the
// later column's value wins.
func CleanCortexHeaders(t *records.Table) *records.Table {
	renamed := make(map[string]string, len(t.Columns))
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		clean := CleanHeader(c)
		renamed[c] = clean
		columns = append(columns, clean)
	}

	for _, r := range t.Records {
		old := r.Clone()
		clear(r)
		for _, c := range t.Columns {
			if v, ok := old[c]; ok {
				r[renamed[c]] = v
			}
		}
	}
	t.Columns = uniqueColumns(columns)
	return t
}
