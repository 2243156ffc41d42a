package document

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/api"
	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/cmd/completion"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
	"github.com/open-cli-collective/tablecheck/pkg/md"
)

type renderOptions struct {
	globals cmdutil.Globals
	format  string
	server  string
	out     io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a document with interactive table checkboxes",
		Long: `Render a Markdown document from the vault. Checkboxes written as [ ] or [x]
inside table cells become checkbox controls bound to their source line.

The text format shows each checkbox as ☐ or ☑ followed by its index within
the row, which is the index expected by 'tablecheck toggle'.`,
		Example: `  # Show a text preview
  tablecheck render projects/todo.md

  # Emit the HTML fragment
  tablecheck render projects/todo.md --format html

  # List the bound checkboxes as JSON
  tablecheck render projects/todo.md --format json

  # Render through a running preview server
  tablecheck render projects/todo.md --server http://127.0.0.1:7777`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Documents,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			return runRender(args[0], opts, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Render format: text, html, json")
	cmd.Flags().StringVar(&opts.server, "server", "", "Render through a running preview server at this URL")

	return cmd
}

func runRender(arg string, opts *renderOptions, store checkbox.Store, client *api.Client) error {
	switch opts.format {
	case "text", "html", "json":
	default:
		return fmt.Errorf("invalid render format %q (valid: text, html, json)", opts.format)
	}

	if client == nil && opts.server != "" {
		client = api.NewClient(opts.server)
	}

	var (
		resp   *api.RenderResponse
		output = opts.globals.Output
	)
	if client != nil {
		id, err := vault.CleanID(arg)
		if err != nil {
			return err
		}
		resp, err = client.Render(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to render via preview server: %w", err)
		}
	} else {
		t, err := open(arg, opts.globals, store)
		if err != nil {
			return err
		}
		output = t.output
		resp, err = renderLocal(t)
		if err != nil {
			return err
		}
	}

	renderer := newRenderer(output, opts.globals.NoColor, opts.out)

	switch opts.format {
	case "html":
		renderer.RenderText(resp.HTML)
		return nil
	case "json":
		return renderer.RenderJSON(resp)
	}

	if resp.Title != "" {
		renderer.RenderKeyValue("Title", resp.Title)
		renderer.RenderText("")
	}
	if resp.Preview == "" {
		renderer.RenderText("(No content)")
		return nil
	}
	renderer.RenderText(resp.Preview)
	return nil
}

// renderLocal renders an opened document into the same shape the preview
// server returns.
func renderLocal(t *target) (*api.RenderResponse, error) {
	doc, controls, err := md.Load(context.Background(), t.store, t.id, checkbox.WithLogger(t.logger))
	if err != nil {
		return nil, err
	}
	body, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	preview, err := md.Preview(doc.Root)
	if err != nil {
		return nil, err
	}

	resp := &api.RenderResponse{
		Document: t.id,
		Title:    doc.Title,
		HTML:     body,
		Preview:  preview,
		Controls: make([]api.Control, 0, len(controls)),
	}
	for _, c := range controls {
		resp.Controls = append(resp.Controls, api.Control{
			Line:    c.Target.Line,
			Index:   c.Target.Index,
			Checked: c.Checked,
		})
	}
	return resp, nil
}
