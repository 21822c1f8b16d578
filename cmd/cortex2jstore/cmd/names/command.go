// Package names implements the names command, a preview of the personal
// name formatter.
package names

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/cmd/output"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/normalize"
)

// Name is one formatted input. Formatted is empty when the name was dropped.
type Name struct {
	Original  string `json:"original" yaml:"original"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

// NewCommand creates the names command.
func NewCommand(app application.Application) *cobra.Command {
	var list bool
	var mapping string

	cmd := &cobra.Command{
		Use:   "names [name...]",
		Short: "Format personal names as \"Last, First\"",
		Long: `Names prints each name next to its "Last, First [suffix]" form. Names
that cannot be formatted, such as annotated names, show an empty result.
With no arguments, names are read from stdin, one per line.

With --list, each input is a delimited field value and is normalized the
way the people field is during a run.`,
		Example: `  cortex2jstore names "Martin Luther King Jr."
  cortex2jstore names --list "John Smith,Jane Q. Doe"
  cut -d, -f3 people.csv | cortex2jstore names -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			schema, err := app.Schema(mapping)
			if err != nil {
				return err
			}
			formatter := normalize.NewNames(schema.Suffixes)

			inputs := args
			if len(inputs) == 0 {
				if inputs, err = readLines(cmd); err != nil {
					return err
				}
			}

			results := make([]Name, 0, len(inputs))
			for _, in := range inputs {
				var formatted string
				if list {
					formatted, _ = formatter.List(normalize.Delimiters(in))
				} else {
					formatted = formatter.Format(in)
				}
				results = append(results, Name{Original: in, Formatted: formatted})
			}

			format = output.DetectFormat(string(format))
			if format == output.FormatTable {
				data := output.Data{Headers: []string{"Original", "Formatted"}}
				for _, r := range results {
					data.Rows = append(data.Rows, []string{r.Original, r.Formatted})
				}
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "treat each input as a delimited list of names")
	cmd.Flags().StringVar(&mapping, "mapping", "", "field mapping YAML supplying the suffix vocabulary")

	return cmd
}

// readLines reads non-blank lines from the command's input.
func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "stdin", err)
	}
	return lines, nil
}
