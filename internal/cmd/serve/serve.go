// Package serve provides the serve command, which runs the preview server.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/logging"
	"github.com/open-cli-collective/tablecheck/internal/preview"
)

type serveOptions struct {
	globals cmdutil.Globals
	listen  string
}

// NewCmdServe creates the serve command.
func NewCmdServe() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve vault documents with clickable table checkboxes",
		Long: `Start a local preview server for the vault. Open /docs in a browser, pick a
document and click any checkbox inside a table to update the Markdown file.

Every click re-reads the document, so edits made in an editor while the page
is open are never overwritten.`,
		Example: `  # Serve on the configured address
  tablecheck serve

  # Serve another vault on a different port
  tablecheck serve --vault ~/notes --listen 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address to listen on (default from config, 127.0.0.1:7777)")

	return cmd
}

func newServer(opts *serveOptions) (*preview.Server, error) {
	env, err := cmdutil.Setup(opts.globals)
	if err != nil {
		return nil, err
	}

	listen := env.Config.Listen
	if opts.listen != "" {
		listen = opts.listen
	}

	logger, err := logging.NewJSON(os.Stderr, env.Config.LogLevel)
	if err != nil {
		return nil, err
	}

	return preview.New(preview.Config{
		Logger: logger,
		Listen: listen,
		Store:  env.Vault,
		Vault:  env.Vault.Root(),
	})
}

func runServe(ctx context.Context, opts *serveOptions) error {
	srv, err := newServer(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Serving %s on http://%s/docs\n", srv.Vault(), srv.Listen())
	return srv.Run(ctx)
}
