package md

import (
	"context"
	"fmt"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// Load reads document id from store, renders it, and binds every checkbox
// found in its tables. The returned controls are in document order.
func Load(ctx context.Context, store checkbox.Reader, id string, opts ...checkbox.Option) (*Document, []*checkbox.Control, error) {
	content, err := store.Read(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", id, err)
	}

	doc, err := Render([]byte(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render %s: %w", id, err)
	}

	controls := checkbox.Process(ctx, doc.Root, RenderContext{Document: id}, store, opts...)
	return doc, controls, nil
}
