package sources

import (
	"fmt"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
)

// ReadJSON reads an array of flat objects. Columns follow the order in which
// keys first appear. Strings are taken verbatim, null becomes the empty
// string and any other value keeps its JSON text.
func ReadJSON(data []byte, name string) (*records.Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParseError(string(FormatJSON), "", "invalid JSON", nil)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.NewParseError(string(FormatJSON), "", "top-level value must be an array of objects", nil)
	}

	var (
		columns []string
		recs    []records.Record
		bad     error
	)
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			bad = errors.NewParseError(string(FormatJSON), "",
				fmt.Sprintf("element %d is %s, not an object", len(recs), item.Type), nil)
			return false
		}
		r := make(records.Record)
		item.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if !slices.Contains(columns, k) {
				columns = append(columns, k)
			}
			r[k] = value.String()
			return true
		})
		recs = append(recs, r)
		return true
	})
	if bad != nil {
		return nil, bad
	}

	table := records.NewTable(name, columns)
	for _, r := range recs {
		table.Append(r)
	}
	return table, nil
}
