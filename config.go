package timetree

import (
	"os"

	"github.com/codingconcepts/env"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Format is the report format: text, json, yaml or table
	Format string `json:"format" yaml:"format" env:"TIMETREE_FORMAT"`

	// Color highlights large shares in the table format
	Color bool `json:"color" yaml:"color" env:"TIMETREE_COLOR"`

	// Metrics prints the Prometheus exposition of the report after it
	Metrics bool `json:"metrics" yaml:"metrics" env:"TIMETREE_METRICS"`

	MetricsNamespace string `json:"metricsNamespace" yaml:"metricsNamespace" env:"TIMETREE_METRICS_NAMESPACE"`

	// Iterations is the size of the demo workload loops
	Iterations int `json:"iterations" yaml:"iterations" env:"TIMETREE_ITERATIONS"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:           FormatText,
		MetricsNamespace: "timetree",
		Iterations:       1000000,
	}
}

// LoadConfig reads the YAML config file over the defaults, then applies the
// TIMETREE_* environment variables.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", configFile)
	}

	if err := env.Set(config); err != nil {
		return nil, err
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML, FormatTable:
	default:
		return errors.Errorf("unsupported report format %q", c.Format)
	}

	if c.Iterations < 0 {
		return errors.Errorf("iterations can not be negative, got %d", c.Iterations)
	}

	return nil
}
