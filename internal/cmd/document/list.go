package document

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/cmd/completion"
	"github.com/open-cli-collective/tablecheck/internal/view"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
	"github.com/open-cli-collective/tablecheck/pkg/md"
)

type listOptions struct {
	globals cmdutil.Globals
	out     io.Writer
}

// NewCmdList creates the list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list <document>",
		Short: "List table rows that contain checkboxes",
		Long: `List every table row of a document that renders at least one checkbox,
with its 0-based source line, the number of checkboxes per cell and how many
of them are checked.`,
		Example: `  # List checkbox rows
  tablecheck list projects/todo.md

  # As JSON
  tablecheck list projects/todo.md -o json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Documents,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			return runList(args[0], opts, nil)
		},
	}

	return cmd
}

// rowSummary describes one table row with checkboxes.
type rowSummary struct {
	line    int
	cells   []int
	checked int
	total   int
	text    string
}

func runList(arg string, opts *listOptions, store checkbox.Store) error {
	if err := view.ValidateFormat(opts.globals.Output); err != nil {
		return err
	}

	t, err := open(arg, opts.globals, store)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, controls, err := md.Load(ctx, t.store, t.id, checkbox.WithLogger(t.logger))
	if err != nil {
		return err
	}

	content, err := t.store.Read(ctx, t.id)
	if err != nil {
		return err
	}
	rows := summarize(content, controls)

	renderer := newRenderer(t.output, opts.globals.NoColor, opts.out)
	if len(rows) == 0 && renderer.Format() != view.FormatJSON {
		renderer.RenderText("No table checkboxes found.")
		return nil
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, len(r.cells))
		for i, n := range r.cells {
			cells[i] = strconv.Itoa(n)
		}
		tableRows = append(tableRows, []string{
			strconv.Itoa(r.line),
			strings.Join(cells, ","),
			strconv.Itoa(r.checked),
			strconv.Itoa(r.total),
			view.Truncate(r.text, 60),
		})
	}
	renderer.RenderTable([]string{"LINE", "CELLS", "CHECKED", "TOTAL", "SOURCE"}, tableRows)
	return nil
}

// summarize groups controls by source line, in document order.
func summarize(content string, controls []*checkbox.Control) []rowSummary {
	var rows []rowSummary
	seen := make(map[int]bool)
	for _, c := range controls {
		if seen[c.Target.Line] {
			continue
		}
		seen[c.Target.Line] = true

		line, ok := checkbox.SourceLine(content, c.Target.Line)
		if !ok {
			continue
		}
		r := rowSummary{
			line:  c.Target.Line,
			cells: checkbox.CountsPerCell(line),
			text:  strings.TrimSpace(line),
		}
		for _, tok := range checkbox.Scan(line) {
			r.total++
			if tok.Checked {
				r.checked++
			}
		}
		rows = append(rows, r)
	}
	return rows
}
