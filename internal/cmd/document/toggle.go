package document

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/cmd/completion"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/internal/view"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

type toggleOptions struct {
	globals   cmdutil.Globals
	line      int
	index     int
	checked   bool
	unchecked bool
	server    string
	out       io.Writer
}

// NewCmdToggle creates the toggle command.
func NewCmdToggle() *cobra.Command {
	opts := &toggleOptions{}

	cmd := &cobra.Command{
		Use:   "toggle <document>",
		Short: "Check or uncheck one table checkbox",
		Long: `Set one checkbox in a table row. The row is addressed by its 0-based source
line and the checkbox by its index within the row, counting left to right
across all cells (see 'tablecheck list' and 'tablecheck render').

The line is re-read when the toggle is applied. If it no longer holds a
checkbox with that index the document is left untouched.

With --server the toggle is sent to a running preview server instead of
editing the vault directly.`,
		Example: `  # Check the second checkbox on line 12
  tablecheck toggle projects/todo.md --line 12 --index 1 --checked

  # Uncheck through a running preview server
  tablecheck toggle projects/todo.md --line 12 --index 1 --unchecked --server http://127.0.0.1:7777`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Documents,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			return runToggle(args[0], opts, nil, nil)
		},
	}

	cmd.Flags().IntVarP(&opts.line, "line", "l", -1, "0-based source line of the table row (required)")
	cmd.Flags().IntVarP(&opts.index, "index", "i", -1, "Index of the checkbox within the row (required)")
	cmd.Flags().BoolVar(&opts.checked, "checked", false, "Check the checkbox")
	cmd.Flags().BoolVar(&opts.unchecked, "unchecked", false, "Uncheck the checkbox")
	cmd.Flags().StringVar(&opts.server, "server", "", "Preview server URL (default from config)")

	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("index")
	cmd.MarkFlagsMutuallyExclusive("checked", "unchecked")
	cmd.MarkFlagsOneRequired("checked", "unchecked")

	return cmd
}

func (o *toggleOptions) validate() error {
	if o.line < 0 {
		return errors.New("--line must not be negative")
	}
	if o.index < 0 {
		return errors.New("--index must not be negative")
	}
	if o.checked == o.unchecked {
		return errors.New("exactly one of --checked or --unchecked is required")
	}
	return nil
}

func runToggle(arg string, opts *toggleOptions, store checkbox.Store, client *api.Client) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if err := view.ValidateFormat(opts.globals.Output); err != nil {
		return err
	}

	server := opts.server
	if client == nil && store == nil && server == "" {
		if cfg, err := cmdutil.LoadConfig(opts.globals); err == nil {
			server = cfg.Server
		}
	}
	if client == nil && server != "" {
		client = api.NewClient(server)
	}

	var (
		t      checkbox.Target
		result checkbox.Result
		output = opts.globals.Output
	)
	if client != nil {
		id, err := vault.CleanID(arg)
		if err != nil {
			return err
		}
		t = checkbox.Target{Document: id, Line: opts.line, Index: opts.index}
		resp, err := client.Toggle(context.Background(), t, opts.checked)
		if err != nil {
			return fmt.Errorf("failed to toggle via preview server: %w", err)
		}
		result = resp.Result
	} else {
		doc, err := open(arg, opts.globals, store)
		if err != nil {
			return err
		}
		output = doc.output
		t = checkbox.Target{Document: doc.id, Line: opts.line, Index: opts.index}
		result, err = checkbox.ApplyToggle(context.Background(), doc.store, t, opts.checked, checkbox.WithLogger(doc.logger))
		if err != nil {
			return err
		}
	}

	renderer := newRenderer(output, opts.globals.NoColor, opts.out)
	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(struct {
			checkbox.Target
			Checked bool            `json:"checked"`
			Result  checkbox.Result `json:"result"`
		}{t, opts.checked, result})
	}

	msg := fmt.Sprintf("%s line %d index %d %s: %s", t.Document, t.Line, t.Index, view.Checkbox(opts.checked), result)
	if result == checkbox.Applied {
		renderer.Success(msg)
	} else {
		renderer.Warn(msg)
	}
	return nil
}
