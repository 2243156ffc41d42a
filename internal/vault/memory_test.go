package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

func TestMemoryStore(t *testing.T) {
	docs := map[string]string{"todo.md": "| [ ] |", "image.png": ""}
	store := NewMemoryStore(docs)
	ctx := context.Background()

	docs["todo.md"] = "changed"
	content, err := store.Read(ctx, "todo.md")
	require.NoError(t, err)
	assert.Equal(t, "| [ ] |", content, "store keeps its own copy")

	result, err := checkbox.ApplyToggle(ctx, store, checkbox.Target{Document: "todo.md"}, true)
	require.NoError(t, err)
	assert.Equal(t, checkbox.Applied, result)

	content, err = store.Read(ctx, "todo.md")
	require.NoError(t, err)
	assert.Equal(t, "| [x] |", content)

	_, err = store.Read(ctx, "missing.md")
	require.ErrorIs(t, err, ErrNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"todo.md"}, ids)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore(map[string]string{"todo.md": "| [ ] |"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := checkbox.ApplyToggle(ctx, store, checkbox.Target{Document: "todo.md"}, true)
	require.NoError(t, err)
	assert.Equal(t, checkbox.SkippedUnavailable, result)
}
