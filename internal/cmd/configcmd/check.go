package configcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/config"
	"github.com/open-cli-collective/tablecheck/internal/vault"
)

// NewCmdCheck creates the config check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the vault and preview server configuration",
		Long: `Check that the configured vault can be read and, when a preview server is
configured, that it responds.`,
		Example: `  # Check configuration
  tablecheck config check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			return runCheck(configPath(path), noColor, os.Stdout)
		},
	}

	return cmd
}

func runCheck(configPath string, noColor bool, out io.Writer, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = config.LoadWithEnv(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'tablecheck init' to configure)", err)
		}
	}
	cfg.ApplyDefaults()

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(out, "✗ Invalid configuration:", err)
		fmt.Fprintln(out, "\nReconfigure with: tablecheck init")
		return fmt.Errorf("invalid config: %w", err)
	}
	_, _ = green.Fprintln(out, "✓ Configuration is valid")

	store, err := vault.NewFileStore(cfg.Vault)
	if err != nil {
		_, _ = red.Fprintln(out, "✗ Vault unavailable:", err)
		return err
	}
	docs, err := store.List(context.Background())
	if err != nil {
		_, _ = red.Fprintln(out, "✗ Vault unreadable:", err)
		return fmt.Errorf("failed to list vault: %w", err)
	}
	_, _ = green.Fprintf(out, "✓ Vault %s holds %d Markdown documents\n", store.Root(), len(docs))

	if cfg.Server == "" {
		return nil
	}

	fmt.Fprintf(out, "Checking preview server at %s...\n", cfg.Server)
	client := api.NewClient(cfg.Server)
	health, err := client.Health(context.Background())
	if err != nil {
		_, _ = red.Fprintln(out, "✗ Preview server unreachable:", err)
		fmt.Fprintln(out, "\nStart it with: tablecheck serve")
		return fmt.Errorf("preview server unreachable: %w", err)
	}
	_, _ = green.Fprintf(out, "✓ Preview server is %s\n", health.Status)

	served, err := client.Documents(context.Background())
	if err != nil {
		_, _ = red.Fprintln(out, "✗ Preview server cannot list documents:", err)
		return fmt.Errorf("failed to list documents on preview server: %w", err)
	}
	_, _ = green.Fprintf(out, "✓ Preview server serves %d Markdown documents\n", len(served))

	return nil
}
