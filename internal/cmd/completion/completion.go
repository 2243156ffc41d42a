// Package completion provides shell completion generation commands and
// completion of document arguments.
package completion

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/vault"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Load in current session
  source <(tablecheck completion bash)

  # Install permanently (Linux)
  tablecheck completion bash | sudo tee /etc/bash_completion.d/tablecheck > /dev/null

  # Install permanently (macOS with Homebrew)
  tablecheck completion bash > $(brew --prefix)/etc/bash_completion.d/tablecheck`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		install: `  # Load in current session
  source <(tablecheck completion zsh)

  # Install permanently
  mkdir -p ~/.zsh/completions
  tablecheck completion zsh > ~/.zsh/completions/_tablecheck

  # Then add to ~/.zshrc:
  # fpath=(~/.zsh/completions $fpath)
  # autoload -Uz compinit && compinit`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `  # Load in current session
  tablecheck completion fish | source

  # Install permanently
  tablecheck completion fish > ~/.config/fish/completions/tablecheck.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `  # Load in current session
  tablecheck completion powershell | Out-String | Invoke-Expression

  # Install permanently
  tablecheck completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tablecheck.

These scripts enable tab-completion for commands, flags, and document
arguments, which are completed from the configured vault.
See each sub-command's help for installation instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:                   s.name,
		Short:                 fmt.Sprintf("Generate %s completion script", s.name),
		Long:                  fmt.Sprintf("Generate %s completion script for tablecheck.", s.name),
		Example:               s.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// Documents completes the document argument of a command with the ids of
// the Markdown documents in the configured vault. Without a usable vault
// it falls back to file completion.
func Documents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := cmdutil.LoadConfig(cmdutil.GlobalsFrom(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	store, err := vault.NewFileStore(cfg.Vault)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return matchDocuments(context.Background(), store, toComplete)
}

func matchDocuments(ctx context.Context, store interface {
	List(ctx context.Context) ([]string, error)
}, prefix string) ([]string, cobra.ShellCompDirective) {
	ids, err := store.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
