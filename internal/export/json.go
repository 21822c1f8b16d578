package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// jsonIndent is one nesting level of JSON output.
const jsonIndent = "    "

// WriteJSON writes doc as indented JSON. doc is built from yaml.MapSlice
// objects, []any lists and strings, as returned by Table, Pairs and
// Subjects; object keys are written in slice order.
func WriteJSON(w io.Writer, doc any) error {
	bw := bufio.NewWriter(w)
	if err := writeJSONValue(bw, doc, 0); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

func writeJSONValue(w *bufio.Writer, v any, depth int) error {
	switch v := v.(type) {
	case yaml.MapSlice:
		if len(v) == 0 {
			_, err := w.WriteString("{}")
			return err
		}
		w.WriteString("{\n")
		for i, item := range v {
			w.WriteString(strings.Repeat(jsonIndent, depth+1))
			if err := writeJSONValue(w, fmt.Sprint(item.Key), depth+1); err != nil {
				return err
			}
			w.WriteString(": ")
			if err := writeJSONValue(w, item.Value, depth+1); err != nil {
				return err
			}
			if i < len(v)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(strings.Repeat(jsonIndent, depth))
		return w.WriteByte('}')

	case []any:
		if len(v) == 0 {
			_, err := w.WriteString("[]")
			return err
		}
		w.WriteString("[\n")
		for i, item := range v {
			w.WriteString(strings.Repeat(jsonIndent, depth+1))
			if err := writeJSONValue(w, item, depth+1); err != nil {
				return err
			}
			if i < len(v)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(strings.Repeat(jsonIndent, depth))
		return w.WriteByte(']')

	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return err
		}
		_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		return err
	}
}
