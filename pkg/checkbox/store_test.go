package checkbox

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/net/html"
)

var errNoDocument = errors.New("no such document")

// plainStore only offers separate Read and Write.
type plainStore struct {
	mu     sync.Mutex
	docs   map[string]string
	writes int
}

func newPlainStore(docs map[string]string) *plainStore {
	return &plainStore{docs: docs}
}

func (s *plainStore) Read(_ context.Context, doc string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.docs[doc]
	if !ok {
		return "", errNoDocument
	}
	return content, nil
}

func (s *plainStore) Write(_ context.Context, doc string, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc] = content
	s.writes++
	return nil
}

// atomicStore adds Transform on top of plainStore.
type atomicStore struct {
	*plainStore
	transforms int
	writeErr   error
}

func newAtomicStore(docs map[string]string) *atomicStore {
	return &atomicStore{plainStore: newPlainStore(docs)}
}

func (s *atomicStore) Transform(_ context.Context, doc string, fn func(string) string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transforms++
	content, ok := s.docs[doc]
	if !ok {
		return errNoDocument
	}
	out := fn(content)
	if s.writeErr != nil {
		return s.writeErr
	}
	s.docs[doc] = out
	return nil
}

// staticContext is a RenderContext with a fixed section and document.
type staticContext struct {
	section *SectionInfo
	doc     string
}

func (c staticContext) SectionInfo(_ *html.Node) *SectionInfo { return c.section }

func (c staticContext) ActiveDocument() (string, bool) { return c.doc, c.doc != "" }
