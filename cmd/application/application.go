// Package application defines what cortex2jstore commands need from the
// application: its logger, output format, field mapping and run defaults.
//
// Commands take this interface rather than the concrete app type, so they
// can be tested with application.Mock from internal/cmd/application.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            schema, err := app.Schema("")
//	            if err != nil {
//	                return err
//	            }
//	            // ... use schema
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
)

// RunDefaults holds configured defaults for the run command's flags.
type RunDefaults struct {
	CortexPath  string
	JStorePath  string
	OutputDir   string
	MappingPath string
	MatchedOnly bool
	WriteYAML   bool
	Progress    bool
}

// Application provides the application interface that commands need.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml),
	// or "" to let the formatter decide.
	OutputFormat() string

	// Schema loads the field mapping at path. An empty path means the
	// configured mapping file, or the built-in schema when none is set.
	Schema(path string) (*mapping.Schema, error)

	// RunDefaults returns configured defaults for the run command.
	RunDefaults() RunDefaults

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
