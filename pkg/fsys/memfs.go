package fsys

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// MemFS is a pure in-memory FS for tests.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) ReadFile(rel string) ([]byte, error) {
	p, err := Clean(rel)
	if err != nil {
		return nil, err
	}
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("read %q: %w", rel, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) WriteFile(rel string, data []byte) error {
	p, err := Clean(rel)
	if err != nil {
		return err
	}
	m.files[p] = append([]byte(nil), data...)
	return nil
}

func (m *MemFS) Remove(rel string) error {
	p, err := Clean(rel)
	if err != nil {
		return err
	}
	delete(m.files, p)
	return nil
}

func (m *MemFS) Exists(rel string) bool {
	p, err := Clean(rel)
	if err != nil {
		return false
	}
	_, ok := m.files[p]
	return ok
}

func (m *MemFS) List(skip SkipFunc) ([]string, error) {
	var out []string
	for p := range m.files {
		if skip != nil && skippedByParent(p, skip) {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// skippedByParent applies skip to every directory prefix of p and then to
// p itself, matching the order a directory walk would visit them.
func skippedByParent(p string, skip SkipFunc) bool {
	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		if skip(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return skip(p, false)
}

var _ FS = (*MemFS)(nil)
