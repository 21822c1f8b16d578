package export

import (
	"io"

	"github.com/goccy/go-yaml"
)

// WriteYAML writes doc as YAML with two-space indentation. Ordered objects
// keep their key order.
func WriteYAML(w io.Writer, doc any) error {
	data, err := yaml.MarshalWithOptions(doc,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
