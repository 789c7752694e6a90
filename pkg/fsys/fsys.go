// Package fsys is the narrow file capability the repository uses for the
// working directory: read bytes, write bytes, remove, and list entries.
// All paths are repository-relative and use forward slashes.
package fsys

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// SkipFunc reports whether a path found while listing should be left out.
// Returning true for a directory skips everything below it.
type SkipFunc func(rel string, isDir bool) bool

// FS is the working-directory file capability.
type FS interface {
	// ReadFile returns the content of rel. A missing file yields an error
	// matching fs.ErrNotExist.
	ReadFile(rel string) ([]byte, error)
	// WriteFile creates or overwrites rel, creating parent directories.
	WriteFile(rel string, data []byte) error
	// Remove deletes rel and prunes parent directories left empty. Removing
	// a missing file is not an error.
	Remove(rel string) error
	// Exists reports whether rel is a regular file.
	Exists(rel string) bool
	// List returns every regular file not skipped, sorted.
	List(skip SkipFunc) ([]string, error)
}

// ErrInvalidPath is returned for paths that are absolute or leave the root.
var ErrInvalidPath = errors.New("invalid repository path")

// Clean normalises rel to a slash-separated path inside the root.
func Clean(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	cleaned := path.Clean(rel)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return cleaned, nil
}
