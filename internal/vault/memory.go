package vault

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps documents in memory. Transform runs under the store
// lock and always writes the result back.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryStore creates a store holding a copy of docs.
func NewMemoryStore(docs map[string]string) *MemoryStore {
	m := &MemoryStore{docs: make(map[string]string, len(docs))}
	for id, content := range docs {
		m.docs[id] = content
	}
	return m
}

// Read implements checkbox.Reader.
func (m *MemoryStore) Read(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.docs[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return content, nil
}

// Write implements checkbox.Writer.
func (m *MemoryStore) Write(ctx context.Context, id string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = content
	return nil
}

// Transform implements checkbox.Transformer.
func (m *MemoryStore) Transform(ctx context.Context, id string, fn func(string) string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.docs[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	m.docs[id] = fn(content)
	return nil
}

// List returns the ids of all Markdown documents, sorted.
func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		if IsMarkdown(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
