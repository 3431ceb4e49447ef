package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/cmdevents/pkg/constants"
	"github.com/agentstation/cmdevents/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Event handling
	Overrides     string
	StrictExit    bool
	ErrorExitCode int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later with UpdateFromFlags)
// 2. CMDEVENTS_* environment variables
// 3. .env files
// 4. Config file (~/.cmdevents.yaml or ./.cmdevents.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("error-exit-code", constants.ExitUsage)
	v.SetDefault("log-format", "auto")
	v.SetDefault("log-output", "stderr")
	v.SetDefault("overrides", defaultOverridesPath())

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		NoColor:       v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		ConfigFile:    v.ConfigFileUsed(),
		Overrides:     v.GetString("overrides"),
		StrictExit:    v.GetBool("strict-exit"),
		ErrorExitCode: v.GetInt("error-exit-code"),
		LogLevel:      firstNonEmpty(v.GetString("log-level"), os.Getenv("LOG_LEVEL")),
		LogFormat:     firstNonEmpty(os.Getenv("LOG_FORMAT"), v.GetString("log-format")),
		LogOutput:     firstNonEmpty(os.Getenv("LOG_OUTPUT"), v.GetString("log-output")),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed global flags so that
// flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, overrides, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if overrides != "" {
		c.Overrides = overrides
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// defaultOverridesPath returns ./overrides.yaml when it exists.
func defaultOverridesPath() string {
	if _, err := os.Stat(constants.DefaultOverridesFile); err == nil {
		return constants.DefaultOverridesFile
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, constants.ConfigFileName, constants.DefaultOverridesFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read after .env; godotenv never overrides variables that
// are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
