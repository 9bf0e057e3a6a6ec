// Package config holds the dtxscan configuration, loadable from
// .dtxscan.yaml with environment variable and flag overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mvp-joe/dtxscan/internal/output"
)

// Config is the complete dtxscan configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files a directory scan picks up.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for package files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// OutputConfig defines how records are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "table", "json" or "csv"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{"**/*.dtsx", "*.dtsx"},
			Ignore:  []string{"**/bin/**", "**/obj/**"},
		},
		Output: OutputConfig{
			Format: output.FormatTable,
		},
	}
}

// Load builds the effective configuration: defaults overlaid with
// whatever the viper instance read from file, environment and flags.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the pipeline would choke on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case output.FormatTable, output.FormatJSON, output.FormatCSV:
	default:
		return fmt.Errorf("unknown output format %q (expected table, json or csv)", c.Output.Format)
	}
	if len(c.Paths.Include) == 0 {
		return fmt.Errorf("paths.include must not be empty")
	}
	return nil
}
