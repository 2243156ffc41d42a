// Package init provides the init command for tablecheck.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/config"
	"github.com/open-cli-collective/tablecheck/internal/view"
)

type initOptions struct {
	configPath string
	vault      string
	listen     string
	out        io.Writer
}

// prompter fills cfg interactively. confirm is asked before an existing
// config file is overwritten.
type prompter interface {
	confirmOverwrite(path string) (bool, error)
	fill(cfg *config.Config) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize tablecheck configuration",
		Long: `Initialize tablecheck with the location of your Markdown vault.

This command will guide you through choosing the vault directory, the
preview server address and the default output format. The configuration
will be saved to ~/.config/tablecheck/config.yml.`,
		Example: `  # Interactive setup
  tablecheck init

  # Pre-populate the vault
  tablecheck init --vault ~/notes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runInit(opts, formPrompter{})
		},
	}

	cmd.Flags().StringVar(&opts.vault, "vault", "", "Vault directory holding your Markdown notes")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "Preview server address (e.g., 127.0.0.1:7777)")

	return cmd
}

func runInit(opts *initOptions, p prompter) error {
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := p.confirmOverwrite(configPath)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		Vault:  opts.vault,
		Listen: opts.listen,
	}
	cfg.ApplyDefaults()

	if err := p.fill(cfg); err != nil {
		return err
	}

	if abs, err := filepath.Abs(expandHome(cfg.Vault)); err == nil {
		cfg.Vault = abs
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  tablecheck list <document>")
	fmt.Fprintln(out, "  tablecheck serve")

	return nil
}

func expandHome(p string) string {
	if p == "~" || (len(p) > 1 && p[:2] == "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

type formPrompter struct{}

func (formPrompter) confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}

func (formPrompter) fill(cfg *config.Config) error {
	formats := make([]huh.Option[string], 0, len(view.ValidFormats()))
	for _, f := range view.ValidFormats() {
		formats = append(formats, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Vault").
				Description("Directory holding your Markdown notes").
				Placeholder("~/notes").
				Value(&cfg.Vault).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("vault is required")
					}
					info, err := os.Stat(expandHome(s))
					if err != nil {
						return fmt.Errorf("cannot open %s", s)
					}
					if !info.IsDir() {
						return fmt.Errorf("%s is not a directory", s)
					}
					return nil
				}),

			huh.NewInput().
				Title("Preview server address").
				Description("Where 'tablecheck serve' listens").
				Placeholder(config.DefaultListen).
				Value(&cfg.Listen),

			huh.NewSelect[string]().
				Title("Output format").
				Options(formats...).
				Value(&cfg.OutputFormat),
		),
	)

	return form.Run()
}
