package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordClone(t *testing.T) {
	r := Record{"Filename": "img001.jpg", "Title[2071407]": ""}
	c := r.Clone()
	c["Title[2071407]"] = "Portrait"

	assert.Equal(t, "", r["Title[2071407]"])
	assert.Equal(t, "img001.jpg", c["Filename"])

	v, ok := r.Get("Missing")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestTableAppendKeepsHeaderOrder(t *testing.T) {
	tbl := NewTable("jstore", []string{"Filename", "Title[2071407]"})
	tbl.Append(Record{"Title[2071407]": "A", "Filename": "a.jpg"})
	tbl.Append(Record{"Filename": "b.jpg", "Title[2071407]": "B", "Notes": "n", "Extra": "e"})

	assert.Equal(t, []string{"Filename", "Title[2071407]", "Extra", "Notes"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"a.jpg", "A", "", ""}, tbl.Row(0))
	assert.Equal(t, []string{"b.jpg", "B", "e", "n"}, tbl.Row(1))
	assert.True(t, tbl.HasColumn("Notes"))
	assert.False(t, tbl.HasColumn("Title"))
}

func TestTableSubsetSharesRecords(t *testing.T) {
	tbl := NewTable("jstore", []string{"Filename"})
	tbl.Append(Record{"Filename": "a.jpg"})
	tbl.Append(Record{"Filename": "b.jpg"})

	sub := tbl.Subset("matched", tbl.Records[1:])
	require.Equal(t, 1, sub.Len())
	sub.Records[0]["Filename"] = "c.jpg"

	assert.Equal(t, "c.jpg", tbl.Records[1]["Filename"])
	assert.Equal(t, "matched", sub.Name)
}

func TestTableAppendSortsNewFields(t *testing.T) {
	tbl := NewTable("x", nil)
	tbl.Append(Record{"b": "1", "a": "2"})
	tbl.Append(Record{"c": "3"})
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)

	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
}
