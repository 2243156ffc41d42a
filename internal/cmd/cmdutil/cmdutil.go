// Package cmdutil holds the setup shared by tablecheck commands.
package cmdutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tablecheck/internal/config"
	"github.com/open-cli-collective/tablecheck/internal/logging"
	"github.com/open-cli-collective/tablecheck/internal/vault"
)

// Globals holds the values of the root command's persistent flags.
type Globals struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Vault      string
	LogLevel   string
}

// GlobalsFrom reads the persistent flags of cmd.
func GlobalsFrom(cmd *cobra.Command) Globals {
	var g Globals
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Vault, _ = cmd.Flags().GetString("vault")
	g.LogLevel, _ = cmd.Flags().GetString("log-level")
	return g
}

// Env is a loaded configuration with the vault and logger it describes.
type Env struct {
	Config *config.Config
	Vault  *vault.FileStore
	Logger *zap.Logger
}

// LoadConfig loads the config file, applies environment and flag overrides
// and validates the result.
func LoadConfig(g Globals) (*config.Config, error) {
	path := g.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'tablecheck init' to configure)", err)
	}

	if g.Vault != "" {
		cfg.Vault = g.Vault
	}
	if g.Output != "" {
		cfg.OutputFormat = g.Output
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'tablecheck init' to configure)", err)
	}
	return cfg, nil
}

// Setup loads the configuration and opens the vault.
func Setup(g Globals) (*Env, error) {
	cfg, err := LoadConfig(g)
	if err != nil {
		return nil, err
	}

	store, err := vault.NewFileStore(cfg.Vault)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &Env{Config: cfg, Vault: store, Logger: logger}, nil
}
