// Package logging provides structured logging for cortex2jstore using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so a
// batch run under cron produces machine-readable logs.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("records", 120).Msg("Loaded JStore export")
//
//	ctx := logging.WithStage(context.Background(), "merge")
//	logging.FromContext(ctx).Debug().Str("field", "Title[2071407]").Msg("Filled empty field")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the global logger, configured from the environment until
// the CLI replaces it.
var defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a new debug level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// stderrIsTerminal reports whether stderr is an interactive terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
