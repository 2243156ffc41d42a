// Package config provides configuration management for tablecheck.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/tablecheck/internal/logging"
	"github.com/open-cli-collective/tablecheck/internal/view"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultListen       = "127.0.0.1:7777"
	DefaultOutputFormat = "table"
	DefaultLogLevel     = "warn"
)

// Config holds the tablecheck configuration.
type Config struct {
	Vault        string `yaml:"vault"`
	Listen       string `yaml:"listen,omitempty"`
	Server       string `yaml:"server,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.Vault == "" {
		return errors.New("vault is required")
	}
	info, err := os.Stat(c.Vault)
	if err != nil {
		return fmt.Errorf("vault is not accessible: %w", err)
	}
	if !info.IsDir() {
		return errors.New("vault must be a directory")
	}

	if c.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Listen); err != nil {
			return fmt.Errorf("invalid listen address: %w", err)
		}
	}

	// Validate server URL scheme
	if c.Server != "" && !strings.HasPrefix(c.Server, "http://") && !strings.HasPrefix(c.Server, "https://") {
		return errors.New("server must be an http or https URL")
	}

	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ApplyDefaults fills empty optional fields.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Server = strings.TrimSuffix(c.Server, "/")
}

// EnvVars lists the environment variables read by LoadFromEnv.
var EnvVars = []string{
	"TABLECHECK_VAULT",
	"TABLECHECK_LISTEN",
	"TABLECHECK_SERVER",
	"TABLECHECK_OUTPUT",
	"TABLECHECK_LOG_LEVEL",
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("TABLECHECK_VAULT"); v != "" {
		c.Vault = v
	}
	if v := os.Getenv("TABLECHECK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("TABLECHECK_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("TABLECHECK_OUTPUT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("TABLECHECK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "tablecheck", "config.yml")
	}

	// Fall back to ~/.config/tablecheck/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tablecheck", "config.yml")
	}

	return filepath.Join(home, ".config", "tablecheck", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
