// Package convert implements the convert command.
package convert

import (
	"github.com/spf13/cobra"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/export"
	"github.com/vanderbilt-libraries/cortex2jstore/internal/sources"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
)

// NewCommand creates the convert command.
func NewCommand(app application.Application) *cobra.Command {
	var cleanHeaders bool

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a record file to another format",
		Long: `Convert reads a csv, xlsx or json record file and writes it in the format
named by the output extension: csv, xlsx, json or yaml. Column order is kept.`,
		Example: `  cortex2jstore convert output/finaljstore.json finaljstore.csv
  cortex2jstore convert cortex.csv cortex.json --clean-headers`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			logger := app.Logger()
			ctx := logging.WithLogger(cmd.Context(), logger)

			table, err := sources.Read(ctx, in)
			if err != nil {
				return err
			}
			if cleanHeaders {
				sources.CleanCortexHeaders(table)
			}

			if err := export.WriteTable(out, table); err != nil {
				return err
			}

			logger.Info().
				Str("input", in).
				Str("output", out).
				Int("records", table.Len()).
				Msg("Converted record file")
			return nil
		},
	}

	cmd.Flags().BoolVar(&cleanHeaders, "clean-headers", false, "strip BOMs, quotes and qualifiers from headers")

	return cmd
}
