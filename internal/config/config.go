// Package config handles the XDG configuration directory and settings.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.yaml"

	// LogFile receives log output while the terminal UI owns the screen.
	LogFile = "taskboard.log"

	// EnvPrefix prefixes environment overrides (TASKBOARD_BASE_URL, ...).
	EnvPrefix = "TASKBOARD"

	// DefaultBaseURL is the API root that holds the Tasks collection.
	DefaultBaseURL = "https://localhost:4000/api"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "warn"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// BaseURL is the API root; the collection lives at BaseURL + "/Tasks".
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Timeout bounds each request. Zero means requests never time out.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Debug forces debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`
}

// New creates a Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// New does not read the config file; see Load.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		BaseURL:  DefaultBaseURL,
		LogLevel: DefaultLogLevel,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to the settings file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path of the log file used by the terminal UI.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// HasFile checks if the settings file exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// CollectionURL returns the URL of the Tasks collection.
func (c *Config) CollectionURL() string {
	base := c.BaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/Tasks"
}
