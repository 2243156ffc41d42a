// Package root provides the root command for the tablecheck CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/cmd/completion"
	"github.com/open-cli-collective/tablecheck/internal/cmd/configcmd"
	"github.com/open-cli-collective/tablecheck/internal/cmd/document"
	initcmd "github.com/open-cli-collective/tablecheck/internal/cmd/init"
	"github.com/open-cli-collective/tablecheck/internal/cmd/serve"
	"github.com/open-cli-collective/tablecheck/internal/version"
)

// NewCmdRoot creates the root command for tablecheck.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tablecheck",
		Short: "Clickable checkboxes in Markdown tables",
		Long: `tablecheck turns [ ] and [x] written inside Markdown table cells into
checkboxes that can be toggled without disturbing the rest of the file.

Documents live in a vault: a directory of Markdown notes. Every toggle
re-reads the document and rewrites exactly one checkbox on one line.

Get started by running: tablecheck init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/tablecheck/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default from config, table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("vault", "", "vault directory (overrides config)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	// Set version template
	cmd.SetVersionTemplate("tablecheck version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(document.NewCmdRender())
	cmd.AddCommand(document.NewCmdList())
	cmd.AddCommand(document.NewCmdToggle())
	cmd.AddCommand(document.NewCmdPick())
	cmd.AddCommand(serve.NewCmdServe())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
