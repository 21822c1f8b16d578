// Package app wires configuration, logging and commands for the
// cortex2jstore CLI.
package app

import (
	"github.com/rs/zerolog"

	"github.com/vanderbilt-libraries/cortex2jstore/cmd/application"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/errors"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/mapping"
)

// App holds the CLI's configuration and logger.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger replaces the logger built from configuration.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = &logger
		return nil
	}
}

// New creates a new App with the given version information. Configuration
// is loaded from .env files, the environment and the config file.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "cannot load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Schema loads the field mapping at path, falling back to the configured
// mapping file and then to the built-in schema.
func (a *App) Schema(path string) (*mapping.Schema, error) {
	if path == "" {
		path = a.config.MappingPath
	}
	if path == "" {
		return mapping.Default(), nil
	}

	schema, err := mapping.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("file", path).Msg("Loaded field mapping")
	return schema, nil
}

// RunDefaults returns configured defaults for the run command.
func (a *App) RunDefaults() application.RunDefaults {
	return application.RunDefaults{
		CortexPath:  a.config.CortexPath,
		JStorePath:  a.config.JStorePath,
		OutputDir:   a.config.OutputDir,
		MappingPath: a.config.MappingPath,
		MatchedOnly: a.config.MatchedOnly,
		WriteYAML:   a.config.WriteYAML,
		Progress:    a.config.Progress,
	}
}
