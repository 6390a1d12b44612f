package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration options for the task manager
type Config struct {
	Database    DatabaseConfig
	Validation  ValidationConfig
	Logging     LoggingConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `env:"TM_DB_DIR"`
	Filename       string `env:"TM_DB_FILENAME"`
	DirPermissions uint32 `env:"TM_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `env:"TM_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"TM_VALIDATION_DESCRIPTION_MAX"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"TM_LOG_LEVEL"`
	Format string `env:"TM_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TM_APP_TIMEOUT"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	OutputDefaultFormat string `env:"TM_OUTPUT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".tm"),
			Filename:       "Tasks.db",
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       255,
			DescriptionMaxLength: 2000,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
		Commands: CommandsConfig{
			OutputDefaultFormat: "csv",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse leave the current setting in place.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TM_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TM_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("TM_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("TM_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TM_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Logging configuration
	if level := os.Getenv("TM_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TM_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}

	// Commands configuration
	if format := os.Getenv("TM_OUTPUT_DEFAULT_FORMAT"); format != "" {
		c.Commands.OutputDefaultFormat = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.DirPermissions == 0 || c.Database.DirPermissions > 0777 {
		return &ConfigError{Field: "database.dir_permissions", Message: "directory permissions must be between 0001 and 0777"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return &ConfigError{Field: "logging.level", Message: "unknown log level " + c.Logging.Level}
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate commands configuration
	if c.Commands.OutputDefaultFormat != "csv" && c.Commands.OutputDefaultFormat != "pdf" {
		return &ConfigError{Field: "commands.output_default_format", Message: "output format must be csv or pdf"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
