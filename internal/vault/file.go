package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxTransformAttempts bounds how often Transform retries when the file
// changes underneath it.
const maxTransformAttempts = 3

// FileStore stores documents as files below a root directory.
//
// Writes go to a temporary file in the same directory which is then renamed
// over the document. Transform holds a per-document lock for the whole
// read-modify-write and retries if another process modified the file in
// the meantime.
type FileStore struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates a store rooted at dir, which must exist.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault %s is not a directory", abs)
	}
	return &FileStore{root: abs, locks: make(map[string]*sync.Mutex)}, nil
}

// Root returns the absolute vault directory.
func (s *FileStore) Root() string {
	return s.root
}

// Path returns the file path of a document.
func (s *FileStore) Path(id string) (string, error) {
	cleaned, err := CleanID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// ID returns the document id of a file path given relative to the working
// directory or as an absolute path.
func (s *FileStore) ID(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", file, err)
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", ErrOutsideVault
	}
	return CleanID(filepath.ToSlash(rel))
}

// Resolve turns a command-line argument into a document id. An argument
// naming an existing file is resolved through ID; anything else is taken
// as an id relative to the vault root.
func (s *FileStore) Resolve(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return s.ID(arg)
	}
	return CleanID(arg)
}

// Read implements checkbox.Reader.
func (s *FileStore) Read(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := s.Path(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w", id, err)
	}
	return string(data), nil
}

// Write implements checkbox.Writer.
func (s *FileStore) Write(ctx context.Context, id string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()
	return writeAtomic(p, []byte(content))
}

// Transform implements checkbox.Transformer. The document is rewritten
// only when fn changes it.
func (s *FileStore) Transform(ctx context.Context, id string, fn func(string) string) error {
	p, err := s.Path(id)
	if err != nil {
		return err
	}
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < maxTransformAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		before, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to stat %s: %w", id, err)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", id, err)
		}

		out := fn(string(data))
		if out == string(data) {
			return nil
		}

		// Another program may have saved the file while fn ran.
		after, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", id, err)
		}
		if !sameFile(before, after) {
			continue
		}
		return writeAtomic(p, []byte(out))
	}
	return fmt.Errorf("%s kept changing during update", id)
}

// List returns the ids of all Markdown documents in the vault, sorted.
// Hidden files and directories are skipped.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != s.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vault: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func sameFile(a, b fs.FileInfo) bool {
	return a.Size() == b.Size() && a.ModTime().Equal(b.ModTime())
}

// writeAtomic writes data to a temp file next to p and renames it over p,
// keeping p's permissions.
func writeAtomic(p string, data []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(p); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(p)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, p); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
