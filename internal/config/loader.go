package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return NewLoaderWithEnvFile(DefaultEnvFile)
}

// NewLoaderWithEnvFile creates a loader that reads dotenv values from path.
// An empty path skips the dotenv step.
func NewLoaderWithEnvFile(path string) *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from the dotenv file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	config.ApplyOverrides(overrides)

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile copies dotenv entries into the process environment. Variables
// that are already set win, and a missing file is not an error.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigError{Field: "env_file", Message: err.Error()}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBDirPermissions *uint32

	// Validation overrides
	TitleMaxLength       *int
	DescriptionMaxLength *int

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Application overrides
	Timeout *time.Duration

	// Commands overrides
	OutputDefaultFormat *string
}

// ApplyOverrides copies every set override into the configuration.
// A nil overrides value is a no-op.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBDirPermissions != nil {
		c.Database.DirPermissions = *overrides.DBDirPermissions
	}

	if overrides.TitleMaxLength != nil {
		c.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.DescriptionMaxLength != nil {
		c.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	if overrides.LogLevel != nil {
		c.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		c.Logging.Format = *overrides.LogFormat
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}

	if overrides.OutputDefaultFormat != nil {
		c.Commands.OutputDefaultFormat = *overrides.OutputDefaultFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
