// Package config loads service configuration. Defaults are overlaid first
// with an optional YAML file (CONFIG_FILE) and then with environment
// variables, so deployments can mix both.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment     string        `yaml:"environment"`
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	Debug           bool          `yaml:"debug"`
	DatabaseURL     string        `yaml:"database_url"`
	RedisURL        string        `yaml:"redis_url"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Environment:     "development",
		Addr:            ":8080",
		LogLevel:        "info",
		Debug:           true,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds the effective configuration: defaults, then the YAML file named
// by CONFIG_FILE if set, then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Environment {
	case "test", "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment %q", c.Environment)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	return nil
}

// SlogLevel translates the configured log level. Validate has already
// rejected unknown values by the time this is called.
func (c Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
