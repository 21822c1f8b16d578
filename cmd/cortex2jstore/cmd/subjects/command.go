// Package subjects implements the subjects command.
package subjects

import (
	"github.com/spf13/cobra"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/cmd/output"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/sources"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/subjects"
)

// NewCommand creates the subjects command.
func NewCommand(app application.Application) *cobra.Command {
	var fieldFlag, mapping string

	cmd := &cobra.Command{
		Use:   "subjects [file]",
		Short: "List the distinct local subjects of a record file",
		Example: `  cortex2jstore subjects
  cortex2jstore subjects output/finaljstore.json -o json
  cortex2jstore subjects jstore.xlsx --field "Subjects"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := constants.DefaultFinalPath
			if len(args) == 1 {
				path = args[0]
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			field := fieldFlag
			if field == "" {
				schema, err := app.Schema(mapping)
				if err != nil {
					return err
				}
				field = schema.Subjects
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			table, err := sources.Read(ctx, path)
			if err != nil {
				return err
			}

			if table.Len() > 0 && !table.HasColumn(field) {
				app.Logger().Warn().
					Str("file", path).
					Str("field", field).
					Msg("Subjects field not in file header")
			}

			values := subjects.Collect(table.Records, field).Sorted()
			app.Logger().Debug().
				Str("field", field).
				Int("subjects", len(values)).
				Msg("Collected subjects")

			format = output.DetectFormat(string(format))
			if format == output.FormatTable {
				data := output.Data{Headers: []string{constants.LocalSubjectsHeader}}
				for _, v := range values {
					data.Rows = append(data.Rows, []string{v})
				}
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), values)
		},
	}

	cmd.Flags().StringVar(&fieldFlag, "field", "", "subjects field (default from the mapping)")
	cmd.Flags().StringVar(&mapping, "mapping", "", "field mapping YAML (default built-in)")

	return cmd
}
