package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Every field is optional; environment variables take precedence.
type YAMLConfig struct {
	Env     string        `yaml:"env"`
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"`
}

// ModelConfig points at the model artifact.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines the application logger and its optional file sink.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool `yaml:"enabled"` // nil means default (enabled)
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// withDefaults returns a copy with every unset field filled in.
// Safe to call on a nil receiver.
func (c *YAMLConfig) withDefaults() YAMLConfig {
	var out YAMLConfig
	if c != nil {
		out = *c
	}

	if out.Env == "" {
		out.Env = "development"
	}
	if out.Server.Addr == "" {
		out.Server.Addr = ":5000"
	}
	if out.Model.Path == "" {
		out.Model.Path = "RandomForestRegressor.json"
	}
	if out.Log.MaxSizeMB == 0 {
		out.Log.MaxSizeMB = 100
	}
	if out.Log.MaxBackups == 0 {
		out.Log.MaxBackups = 3
	}
	if out.Log.MaxAgeDays == 0 {
		out.Log.MaxAgeDays = 28
	}
	if out.Metrics.Enabled == nil {
		enabled := true
		out.Metrics.Enabled = &enabled
	}

	return out
}
