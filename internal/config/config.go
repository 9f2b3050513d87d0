package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Values come from defaults, then the optional YAML file, then environment variables.
type Config struct {
	// Environment
	Env   string // "development", "production", etc.
	Debug bool

	// Server
	ServerAddr string

	// Model
	ModelPath string // JSON export of the trained regressor

	// Logging
	LogLevel      string // zap level name: debug, info, warn, error
	LogFile       string // optional rotating log file, empty for stdout only
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Metrics
	MetricsEnabled bool
}

// Load reads configuration, loading a .env file first when one exists.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	y, err := LoadYAMLConfig()
	if err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}
	d := y.withDefaults()

	debug, err := getEnvBool("DEBUG", d.Server.Debug)
	if err != nil {
		return nil, err
	}

	defaultLevel := d.Log.Level
	if debug && defaultLevel == "" {
		defaultLevel = "debug"
	}
	if defaultLevel == "" {
		defaultLevel = "info"
	}

	cfg := &Config{
		Env:        getEnv("ENV", d.Env),
		Debug:      debug,
		ServerAddr: getEnv("SERVER_ADDR", d.Server.Addr),
		ModelPath:  getEnv("MODEL_PATH", d.Model.Path),
		LogLevel:   getEnv("LOG_LEVEL", defaultLevel),
		LogFile:    getEnv("LOG_FILE", d.Log.File),
	}

	if cfg.LogMaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", d.Log.MaxSizeMB); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = getEnvInt("LOG_MAX_BACKUPS", d.Log.MaxBackups); err != nil {
		return nil, err
	}
	if cfg.LogMaxAgeDays, err = getEnvInt("LOG_MAX_AGE_DAYS", d.Log.MaxAgeDays); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = getEnvBool("METRICS_ENABLED", *d.Metrics.Enabled); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
