// Package vault provides document stores for Markdown notes: a store over
// a directory tree and an in-memory store.
//
// Documents are identified by their slash-separated path relative to the
// vault root, e.g. "projects/todo.md".
package vault

import (
	"errors"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrOutsideVault is returned for document ids that escape the vault root.
	ErrOutsideVault = errors.New("path is outside the vault")
)

// CleanID normalizes a document id and rejects ids that are empty, absolute
// or that leave the vault root.
func CleanID(id string) (string, error) {
	id = strings.ReplaceAll(strings.TrimSpace(id), "\\", "/")
	if id == "" {
		return "", ErrNotFound
	}
	if strings.HasPrefix(id, "/") {
		return "", ErrOutsideVault
	}
	cleaned := path.Clean(id)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrOutsideVault
	}
	return cleaned, nil
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
