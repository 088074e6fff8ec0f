// Package config loads the service configuration from a YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http  HTTPConfig  `yaml:"http"`
	Model ModelConfig `yaml:"model"`
	Log   LogConfig   `yaml:"log"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type ModelConfig struct {
	Type         string `yaml:"type"`
	Path         string `yaml:"path"`
	BaselinePath string `yaml:"baseline_path"`
	CacheSize    int    `yaml:"cache_size"`
	Watch        bool   `yaml:"watch"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Encoding   string `yaml:"encoding"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Environment variables that override file settings.
const (
	EnvPort         = "HEARTRISK_PORT"
	EnvModelPath    = "HEARTRISK_MODEL_PATH"
	EnvBaselinePath = "HEARTRISK_BASELINE_PATH"
	EnvLogLevel     = "HEARTRISK_LOG_LEVEL"
)

func Default() *Config {
	return &Config{
		Http: HTTPConfig{
			Port:           5001,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxBodyBytes:   1 << 20,
			AllowedOrigins: []string{"*"},
		},
		Model: ModelConfig{
			Type:         "gradient_boosting",
			Path:         "model.json",
			BaselinePath: "healthy_avg.json",
			CacheSize:    512,
		},
		Log: LogConfig{
			Level:      "info",
			Encoding:   "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults and environment are used as they are.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Http.Port = port
	}
	c.Model.Path = getEnv(EnvModelPath, c.Model.Path)
	c.Model.BaselinePath = getEnv(EnvBaselinePath, c.Model.BaselinePath)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("http.port %d out of range", c.Http.Port))
	}
	if c.Http.ReadTimeout < 0 || c.Http.WriteTimeout < 0 || c.Http.IdleTimeout < 0 {
		err = multierr.Append(err, errors.New("http timeouts must not be negative"))
	}
	if c.Http.MaxBodyBytes <= 0 {
		err = multierr.Append(err, errors.New("http.max_body_bytes must be positive"))
	}
	if len(c.Http.AllowedOrigins) == 0 {
		err = multierr.Append(err, errors.New("http.allowed_origins must not be empty"))
	}
	switch c.Model.Type {
	case "gradient_boosting", "decision_tree":
	default:
		err = multierr.Append(err, fmt.Errorf("model.type %q is not supported", c.Model.Type))
	}
	if c.Model.Path == "" {
		err = multierr.Append(err, errors.New("model.path is required"))
	}
	if c.Model.BaselinePath == "" {
		err = multierr.Append(err, errors.New("model.baseline_path is required"))
	}
	if c.Model.CacheSize < 0 {
		err = multierr.Append(err, errors.New("model.cache_size must not be negative"))
	}
	if _, lerr := zapcore.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", lerr))
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		err = multierr.Append(err, fmt.Errorf("log.encoding %q must be json or console", c.Log.Encoding))
	}
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
