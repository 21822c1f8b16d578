package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/cortex2jstore/cmd/convert"
	"github.com/vanderbilt-libraries/cortex2jstore/cmd/cortex2jstore/cmd/names"
	"github.com/vanderbilt-libraries/cortex2jstore/cmd/cortex2jstore/cmd/run"
	"github.com/vanderbilt-libraries/cortex2jstore/cmd/cortex2jstore/cmd/subjects"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	runCmd := run.NewCommand(a)
	runCmd.GroupID = "core"
	rootCmd.AddCommand(runCmd)

	subjectsCmd := subjects.NewCommand(a)
	subjectsCmd.GroupID = "core"
	rootCmd.AddCommand(subjectsCmd)

	namesCmd := names.NewCommand(a)
	namesCmd.GroupID = "tools"
	rootCmd.AddCommand(namesCmd)

	convertCmd := convert.NewCommand(a)
	convertCmd.GroupID = "tools"
	rootCmd.AddCommand(convertCmd)

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cortex2jstore version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
