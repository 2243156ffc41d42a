package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current tablecheck configuration with source indicators.`,
		Example: `  # Show current config
  tablecheck config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			return runShow(configPath(path), noColor, os.Stdout)
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}
	defaults := *cfg
	defaults.ApplyDefaults()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, defaultValue, envVar string) {
		_, _ = bold.Fprintf(out, "%-12s", label+":")
		source := "config"
		switch {
		case value != "" && os.Getenv(envVar) == value:
			source = envVar
		case value == "" && defaultValue != "":
			value = defaultValue
			source = "default"
		case value == "":
			_, _ = dim.Fprintln(out, "-")
			return
		case fileValue != value:
			source = "-"
		}

		fmt.Fprint(out, value)
		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	printField("Vault", cfg.Vault, fileCfg.Vault, "", "TABLECHECK_VAULT")
	printField("Listen", cfg.Listen, fileCfg.Listen, defaults.Listen, "TABLECHECK_LISTEN")
	printField("Server", cfg.Server, fileCfg.Server, "", "TABLECHECK_SERVER")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, defaults.OutputFormat, "TABLECHECK_OUTPUT")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, defaults.LogLevel, "TABLECHECK_LOG_LEVEL")

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}
