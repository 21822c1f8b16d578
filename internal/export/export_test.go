package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vanderbilt-libraries/cortex2jstore/internal/sources"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/pipeline"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/provenance"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/records"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

func sampleTable() *records.Table {
	t := records.NewTable("jstore", []string{"Filename", "Title[2071407]"})
	t.Append(records.Record{"Filename": "img001.jpg", "Title[2071407]": "Portrait <oil> & \"study\""})
	t.Append(records.Record{"Filename": "img002.jpg", "Title[2071407]": ""})
	return t
}

func TestWriteJSON(t *testing.T) {
	t.Run("table keeps column order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, Table(sampleTable())))

		want := `[
    {
        "Filename": "img001.jpg",
        "Title[2071407]": "Portrait <oil> & \"study\""
    },
    {
        "Filename": "img002.jpg",
        "Title[2071407]": ""
    }
]
`
		assert.Equal(t, want, buf.String())
	})

	t.Run("pairs", func(t *testing.T) {
		pairs := []records.Pair{{
			Target: records.Record{"Filename": "a.jpg"},
			Source: records.Record{"Original File Name": "a.jpg", "Title": "A"},
		}}
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, Pairs(pairs, []string{"Filename"}, []string{"Original File Name", "Title"})))

		want := `[
    [
        {
            "Filename": "a.jpg"
        },
        {
            "Original File Name": "a.jpg",
            "Title": "A"
        }
    ]
]
`
		assert.Equal(t, want, buf.String())
	})

	t.Run("empty values", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, []any{}))
		assert.Equal(t, "[]\n", buf.String())

		buf.Reset()
		require.NoError(t, WriteJSON(&buf, []any{Record(records.Record{}, nil)}))
		assert.Equal(t, "[\n    {}\n]\n", buf.String())
	})

	t.Run("round trip through reader", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, Table(sampleTable())))

		back, err := sources.ReadJSON(buf.Bytes(), "jstore")
		require.NoError(t, err)
		assert.Equal(t, sampleTable().Columns, back.Columns)
		assert.Equal(t, sampleTable().Records, back.Records)
	})
}

func TestRecordExtraFieldsSorted(t *testing.T) {
	obj := Record(records.Record{"b": "2", "z": "26", "a": "1"}, []string{"b", "b"})
	keys := make([]any, len(obj))
	for i, item := range obj {
		keys[i] = item.Key
	}
	assert.Equal(t, []any{"b", "a", "z"}, keys)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Table(sampleTable())))

	out := buf.String()
	assert.Contains(t, out, "- Filename: img001.jpg\n")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Filename")), bytes.Index(buf.Bytes(), []byte("Title[2071407]")))

	buf.Reset()
	set := make(subjects.Set)
	set.Add("Music", "Art")
	require.NoError(t, WriteYAML(&buf, Subjects(set)))
	assert.Equal(t, "- Art\n- Music\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable()))

	back, err := sources.ReadXLSX(bytes.NewReader(buf.Bytes()), "jstore")
	require.NoError(t, err)
	assert.Equal(t, sampleTable().Columns, back.Columns)
	assert.Equal(t, sampleTable().Records, back.Records)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))
	assert.Equal(t, "Filename,Title[2071407]\nimg001.jpg,\"Portrait <oil> & \"\"study\"\"\"\nimg002.jpg,\n", buf.String())
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml", "nested/out.xlsx", "out.csv"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteTable(path, sampleTable()), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	err := WriteTable(filepath.Join(dir, "out.txt"), sampleTable())
	assert.True(t, errors.IsValidationError(err))

	err = WriteDocument(filepath.Join(dir, "doc.xlsx"), []any{})
	assert.True(t, errors.IsValidationError(err))
	_, statErr := os.Stat(filepath.Join(dir, "doc.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExporter(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, WithYAML(true), WithLogger(logging.NewNopLogger()))

	source := records.NewTable("cortex", []string{"Original File Name", "Title", "Description / Data"})
	source.Append(records.Record{"Original File Name": "img001.jpg", "Title": "Portrait", "Description / Data": ""})

	target := records.NewTable("jstore", []string{"Filename", "Title[2071407]", "Description[2071422]", "Vanderbilt People[2083840]", "Vanderbilt Local Subjects[2083876]"})
	target.Append(records.Record{
		"Filename":                           "img001.jpg",
		"Title[2071407]":                     "",
		"Description[2071422]":               "",
		"Vanderbilt People[2083840]":         "Jane Q. Doe,John Smith",
		"Vanderbilt Local Subjects[2083876]": "Art,History",
	})

	p, err := pipeline.New(mapping.Default(), pipeline.WithLogger(logging.NewNopLogger()), pipeline.WithHook(exp.Export))
	require.NoError(t, err)
	_, err = p.Run(context.Background(), source, target)
	require.NoError(t, err)

	for _, name := range []string{
		CortexFile, JStoreFile, MatchesFile, CombinedFile, UnnormalizedFile,
		FinalFile, FinalXLSXFile, SubjectsFile, SubjectsXLSXFile,
		"cortex.yaml", "jstore.yaml", "matches.yaml", "combined.yaml",
		"nsjstore.yaml", "finaljstore.yaml", "localsubjects.yaml",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Len(t, exp.Written(), 16)

	// jstore.json is written before the merge.
	jstore, err := sources.Read(context.Background(), filepath.Join(dir, JStoreFile))
	require.NoError(t, err)
	assert.Equal(t, "", jstore.Records[0]["Title[2071407]"])

	nsjstore, err := sources.Read(context.Background(), filepath.Join(dir, UnnormalizedFile))
	require.NoError(t, err)
	assert.Equal(t, "Portrait", nsjstore.Records[0]["Title[2071407]"])
	assert.Equal(t, "Jane Q. Doe,John Smith", nsjstore.Records[0]["Vanderbilt People[2083840]"])

	final, err := sources.Read(context.Background(), filepath.Join(dir, FinalXLSXFile))
	require.NoError(t, err)
	assert.Equal(t, target.Columns, final.Columns)
	assert.Equal(t, "Doe, Jane Q.|Smith, John", final.Records[0]["Vanderbilt People[2083840]"])

	wb, err := excelize.OpenFile(filepath.Join(dir, SubjectsXLSXFile))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Local Subjects"}, {"Art"}, {"History"}}, rows)
}

func TestExporterProvenance(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, WithLogger(logging.NewNopLogger()))

	source := records.NewTable("cortex", []string{"Original File Name", "Title", "Description / Data"})
	source.Append(records.Record{"Original File Name": "img001.jpg", "Title": "Portrait", "Description / Data": ""})
	target := records.NewTable("jstore", []string{"Filename", "Title[2071407]", "Description[2071422]"})
	target.Append(records.Record{"Filename": "img001.jpg", "Title[2071407]": "", "Description[2071422]": "Kept"})

	p, err := pipeline.New(mapping.Default(),
		pipeline.WithLogger(logging.NewNopLogger()),
		pipeline.WithProvenance(provenance.NewTracker(true)),
		pipeline.WithHook(exp.Export),
	)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), source, target)
	require.NoError(t, err)

	assert.Len(t, exp.Written(), 10)
	log, err := sources.Read(context.Background(), filepath.Join(dir, ProvenanceFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"record", "field", "stage", "source", "previous", "value"}, log.Columns)
	require.Len(t, log.Records, 1)
	assert.Equal(t, records.Record{
		"record":   "img001.jpg",
		"field":    "Title[2071407]",
		"stage":    "merged",
		"source":   "Title",
		"previous": "",
		"value":    "Portrait",
	}, log.Records[0])
}
