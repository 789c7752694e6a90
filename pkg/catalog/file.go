package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/object"
)

// FileIndex stores the catalog as a JSON array in a single file. Every
// mutation rewrites the file atomically.
type FileIndex struct {
	path string
}

func NewFileIndex(path string) *FileIndex {
	return &FileIndex{path: path}
}

type fileEntry struct {
	Hash      string `json:"hash"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (f *FileIndex) load() ([]fileEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog read: %w", err)
	}
	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog read %s: %w: %w", f.path, ErrCorrupt, err)
	}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if !object.Hash(e.Hash).IsFull() {
			return nil, fmt.Errorf("catalog read %s: %w: entry %d has invalid digest %q", f.path, ErrCorrupt, i, e.Hash)
		}
		if seen[e.Hash] {
			return nil, fmt.Errorf("catalog read %s: %w: duplicate digest %s", f.path, ErrCorrupt, e.Hash)
		}
		seen[e.Hash] = true
	}
	return entries, nil
}

func (f *FileIndex) save(entries []fileEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog write: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog write: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-catalog-*")
	if err != nil {
		return fmt.Errorf("catalog write: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("catalog write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("catalog write: close: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("catalog write: rename: %w", err)
	}
	return nil
}

func (f *FileIndex) Record(e Entry) error {
	entries, err := f.load()
	if err != nil {
		return err
	}
	for _, existing := range entries {
		if existing.Hash == string(e.Hash) {
			return nil
		}
	}
	entries = append(entries, fileEntry{Hash: string(e.Hash), Message: e.Message, Timestamp: e.Timestamp})
	return f.save(entries)
}

func (f *FileIndex) All() ([]Entry, error) {
	entries, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Hash: object.Hash(e.Hash), Message: e.Message, Timestamp: e.Timestamp})
	}
	return out, nil
}

func (f *FileIndex) Find(msg string) ([]object.Hash, error) {
	entries, err := f.load()
	if err != nil {
		return nil, err
	}
	var out []object.Hash
	for _, e := range entries {
		if e.Message == msg {
			out = append(out, object.Hash(e.Hash))
		}
	}
	return out, nil
}

func (f *FileIndex) Close() error { return nil }

var _ Index = (*FileIndex)(nil)
