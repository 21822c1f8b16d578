package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vanderbilt-libraries/cortex2jstore/pkg/constants"
	"github.com/vanderbilt-libraries/cortex2jstore/pkg/logging"
)

// envFiles are loaded, in order, before the configuration is read.
var envFiles = []string{".env", ".env.local"}

// EnvPrefix prefixes every environment variable read through viper, e.g.
// CORTEX2JSTORE_OUTPUT_DIR.
const EnvPrefix = "CORTEX2JSTORE"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Run defaults
	CortexPath  string
	JStorePath  string
	OutputDir   string
	MappingPath string
	MatchedOnly bool
	WriteYAML   bool
	Progress    bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (.cortex2jstore.yaml in the working or home directory)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(EnvPrefix + "_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	loadEnvFiles(envFiles...)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("cortex", constants.DefaultCortexPath)
	v.SetDefault("jstore", constants.DefaultJStorePath)
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("progress", true)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".cortex2jstore")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// A missing config file is fine.
		_ = v.ReadInConfig()
	}

	logCfg := logging.ConfigFromEnv()

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CortexPath:  v.GetString("cortex"),
		JStorePath:  v.GetString("jstore"),
		OutputDir:   v.GetString("output_dir"),
		MappingPath: v.GetString("mapping"),
		MatchedOnly: v.GetBool("matched_only"),
		WriteYAML:   v.GetBool("yaml"),
		Progress:    v.GetBool("progress"),

		// Logging is configured through unprefixed variables shared with
		// pkg/logging.
		LogLevel:  logCfg.Level,
		LogFormat: logCfg.Format,
		LogOutput: logCfg.Output,
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. Variables that
// are already set are not overridden, so .env wins over .env.local only where
// the latter is silent. Missing files are skipped; unreadable ones are
// reported and skipped.
func loadEnvFiles(files ...string) {
	for _, envFile := range files {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			logging.Warn().
				Err(err).
				Str("file", envFile).
				Msg("Skipping unreadable env file")
		}
	}
}
