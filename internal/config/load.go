package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Overrides are flag values applied on top of file and environment settings.
// Empty fields are ignored.
type Overrides struct {
	BaseURL string
	Debug   bool
	Quiet   bool
}

var validate = validator.New()

// Load builds a Config for configDir.
// Precedence, lowest first: defaults, config.yaml, TASKBOARD_* environment, overrides.
// A missing config.yaml is not an error.
func Load(configDir string, ov Overrides) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", "0s")
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetConfigFile(cfg.FilePath())
	v.SetConfigType("yaml")
	if cfg.HasFile() {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if ov.BaseURL != "" {
		cfg.BaseURL = ov.BaseURL
	}
	cfg.Debug = ov.Debug
	cfg.Quiet = ov.Quiet

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
