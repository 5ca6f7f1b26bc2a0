// Package config carries the process configuration and the run manifest.
//
// Process-level settings (logging, output locations) come from environment
// variables with the MECH_ prefix. The run manifest (which standard, which
// material, which specimens and raw files) is a YAML file supplied per
// invocation and validated before anything is computed.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process-level configuration.
type Config struct {
	Logging LoggingConfig `envconfig:"LOGGING"`
	Output  OutputConfig  `envconfig:"OUTPUT"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Output   string `envconfig:"OUTPUT" default:"console"`
	FilePath string `envconfig:"FILE_PATH" default:"logs/mechcli.log"`
}

// OutputConfig controls where reports land.
type OutputConfig struct {
	Dir string `envconfig:"DIR" default:"results"`
}

// Load reads the process configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MECH", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return &cfg, nil
}
