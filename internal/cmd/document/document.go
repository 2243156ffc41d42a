// Package document provides the commands that read and toggle table
// checkboxes in a vault document.
package document

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/open-cli-collective/tablecheck/internal/cmd/cmdutil"
	"github.com/open-cli-collective/tablecheck/internal/vault"
	"github.com/open-cli-collective/tablecheck/internal/view"
	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// target is an opened document: the store holding it and its id.
type target struct {
	store  checkbox.Store
	id     string
	logger *zap.Logger
	output string
}

// open resolves arg against store. When store is nil the configured vault
// is loaded (allows injection for testing).
func open(arg string, g cmdutil.Globals, store checkbox.Store) (*target, error) {
	if store != nil {
		id, err := vault.CleanID(arg)
		if err != nil {
			return nil, err
		}
		return &target{store: store, id: id, logger: zap.NewNop(), output: g.Output}, nil
	}

	env, err := cmdutil.Setup(g)
	if err != nil {
		return nil, err
	}
	id, err := env.Vault.Resolve(arg)
	if err != nil {
		return nil, err
	}
	return &target{store: env.Vault, id: id, logger: env.Logger, output: env.Config.OutputFormat}, nil
}

func newRenderer(format string, noColor bool, out io.Writer) *view.Renderer {
	r := view.NewRenderer(view.Format(format), noColor)
	if out == nil {
		out = os.Stdout
	}
	r.SetWriter(out)
	return r
}
