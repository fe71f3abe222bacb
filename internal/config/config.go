package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the egit CLI.
type Config struct {
	APIURL    string        `yaml:"api_url"`
	Token     string        `yaml:"token"`
	Workers   int           `yaml:"workers"`
	OutputDir string        `yaml:"output_dir"`
	Timeout   time.Duration `yaml:"timeout"`
	Progress  bool          `yaml:"progress"`
	UserAgent string        `yaml:"user_agent"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		APIURL:    "https://api.github.com",
		Workers:   4,
		OutputDir: ".",
		Timeout:   30 * time.Second,
		Progress:  true,
		UserAgent: "egit-cli",
	}
}

// yamlConfig is used for YAML unmarshaling with a string timeout.
type yamlConfig struct {
	APIURL    string `yaml:"api_url"`
	Token     string `yaml:"token"`
	Workers   int    `yaml:"workers"`
	OutputDir string `yaml:"output_dir"`
	Timeout   string `yaml:"timeout"`
	Progress  *bool  `yaml:"progress"`
	UserAgent string `yaml:"user_agent"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.APIURL != "" {
		cfg.APIURL = yc.APIURL
	}
	if yc.Token != "" {
		cfg.Token = yc.Token
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.OutputDir != "" {
		cfg.OutputDir = yc.OutputDir
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.Progress != nil {
		cfg.Progress = *yc.Progress
	}
	if yc.UserAgent != "" {
		cfg.UserAgent = yc.UserAgent
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the EGIT_ prefix; GITHUB_TOKEN is honored as
// a fallback for the token.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("EGIT_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("EGIT_TOKEN"); v != "" {
		c.Token = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" && c.Token == "" {
		c.Token = v
	}
	if v := os.Getenv("EGIT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse EGIT_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("EGIT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("EGIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse EGIT_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("EGIT_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("EGIT_USER_AGENT"); v != "" {
		c.UserAgent = v
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("config: api_url is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.APIURL != "" {
		c.APIURL = override.APIURL
	}
	if override.Token != "" {
		c.Token = override.Token
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.UserAgent != "" {
		c.UserAgent = override.UserAgent
	}
	return c
}
