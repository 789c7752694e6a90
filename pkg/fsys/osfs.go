package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OSFS is an FS backed by the real filesystem below Root.
type OSFS struct {
	Root string
}

// NewOSFS returns an OSFS rooted at root.
func NewOSFS(root string) *OSFS {
	return &OSFS{Root: root}
}

func (o *OSFS) abs(rel string) (string, error) {
	cleaned, err := Clean(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(o.Root, filepath.FromSlash(cleaned)), nil
}

func (o *OSFS) ReadFile(rel string) ([]byte, error) {
	p, err := o.abs(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (o *OSFS) WriteFile(rel string, data []byte) error {
	p, err := o.abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("write %q: mkdir: %w", rel, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", rel, err)
	}
	return nil
}

func (o *OSFS) Remove(rel string) error {
	p, err := o.abs(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", rel, err)
	}
	o.removeEmptyParents(filepath.Dir(p))
	return nil
}

// removeEmptyParents removes empty directories up to (but not including)
// the root.
func (o *OSFS) removeEmptyParents(dir string) {
	root := filepath.Clean(o.Root)
	for {
		if dir == root || !strings.HasPrefix(dir, root+string(filepath.Separator)) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}

func (o *OSFS) Exists(rel string) bool {
	p, err := o.abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func (o *OSFS) List(skip SkipFunc) ([]string, error) {
	var out []string
	err := filepath.WalkDir(o.Root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(o.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if skip != nil && skip(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", o.Root, err)
	}
	sort.Strings(out)
	return out, nil
}

var _ FS = (*OSFS)(nil)
