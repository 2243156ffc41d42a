package document

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/cmd/completion"
	"github.com/open-cli-collective/tablecheck/internal/view"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
	"github.com/open-cli-collective/tablecheck/pkg/md"
)

type pickOptions struct {
	globals cmdutil.Globals
	out     io.Writer
}

// chooser asks the user which checkboxes should be checked. It receives
// one option per control and returns the positions to check.
type chooser func(options []huh.Option[int]) ([]int, error)

// NewCmdPick creates the pick command.
func NewCmdPick() *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick <document>",
		Short: "Interactively check and uncheck table checkboxes",
		Long: `Show every table checkbox of a document in a multi-select list. Checkboxes
selected when the list is confirmed are checked, all others unchecked.
Only checkboxes whose state changed are written back.`,
		Example:           `  tablecheck pick projects/todo.md`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Documents,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			return runPick(args[0], opts, nil, promptSelection)
		},
	}

	return cmd
}

func promptSelection(options []huh.Option[int]) ([]int, error) {
	var selected []int
	err := huh.NewMultiSelect[int]().
		Title("Table checkboxes").
		Description("space to toggle, enter to save").
		Options(options...).
		Value(&selected).
		Height(min(len(options)+2, 20)).
		Run()
	return selected, err
}

func runPick(arg string, opts *pickOptions, store checkbox.Store, choose chooser) error {
	t, err := open(arg, opts.globals, store)
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, controls, err := md.Load(ctx, t.store, t.id, checkbox.WithLogger(t.logger))
	if err != nil {
		return err
	}

	renderer := newRenderer(string(view.FormatTable), opts.globals.NoColor, opts.out)
	if len(controls) == 0 {
		renderer.RenderText("No table checkboxes found.")
		return nil
	}

	content, err := t.store.Read(ctx, t.id)
	if err != nil {
		return err
	}

	options := make([]huh.Option[int], len(controls))
	for i, c := range controls {
		row, _ := checkbox.SourceLine(content, c.Target.Line)
		label := fmt.Sprintf("line %d #%d  %s", c.Target.Line, c.Target.Index, view.Truncate(row, 60))
		options[i] = huh.NewOption(label, i).Selected(c.Checked)
	}

	selected, err := choose(options)
	if err != nil {
		return err
	}
	want := make(map[int]bool, len(selected))
	for _, i := range selected {
		want[i] = true
	}

	changed := 0
	for i, c := range controls {
		if c.Checked == want[i] {
			continue
		}
		changed++
		result, err := c.Change(ctx, t.store, want[i], checkbox.WithLogger(t.logger))
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("line %d index %d %s: %s", c.Target.Line, c.Target.Index, view.Checkbox(want[i]), result)
		if result == checkbox.Applied {
			renderer.Success(msg)
		} else {
			renderer.Warn(msg)
		}
	}

	if changed == 0 {
		renderer.RenderText("No changes.")
	}
	return nil
}
