package repo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/fsys"
	"github.com/odvcencio/gitlet/pkg/object"
)

// Index is the staging index: the pending delta between the working
// directory and HEAD. A path is never staged for addition and removal at
// the same time.
type Index struct {
	Add    map[string]object.Hash `json:"add"`
	Remove map[string]object.Hash `json:"remove"`
}

func newIndex() *Index {
	return &Index{
		Add:    make(map[string]object.Hash),
		Remove: make(map[string]object.Hash),
	}
}

// IsEmpty reports whether nothing is staged.
func (idx *Index) IsEmpty() bool {
	return len(idx.Add) == 0 && len(idx.Remove) == 0
}

// Drain returns both tables and resets the index to empty.
func (idx *Index) Drain() (add, remove map[string]object.Hash) {
	add, remove = idx.Add, idx.Remove
	idx.Add = make(map[string]object.Hash)
	idx.Remove = make(map[string]object.Hash)
	return add, remove
}

func (r *Repo) indexPath() string {
	return filepath.Join(r.GitletDir, "index.json")
}

// loadIndex reads .gitlet/index.json. Entries are validated: paths must be
// clean repository paths, digests must be full, and no path may appear in
// both tables.
func (r *Repo) loadIndex() (*Index, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newIndex(), nil
		}
		return nil, fmt.Errorf("load index: %w", err)
	}
	idx := newIndex()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(idx); err != nil {
		return nil, fmt.Errorf("load index: %w: %w", ErrCorruptState, err)
	}
	if idx.Add == nil {
		idx.Add = make(map[string]object.Hash)
	}
	if idx.Remove == nil {
		idx.Remove = make(map[string]object.Hash)
	}
	for _, table := range []map[string]object.Hash{idx.Add, idx.Remove} {
		for p, h := range table {
			if clean, err := fsys.Clean(p); err != nil || clean != p {
				return nil, fmt.Errorf("load index: %w: bad path %q", ErrCorruptState, p)
			}
			if !h.IsFull() {
				return nil, fmt.Errorf("load index: %w: bad digest %q for %q", ErrCorruptState, h, p)
			}
		}
	}
	for p := range idx.Add {
		if _, ok := idx.Remove[p]; ok {
			return nil, fmt.Errorf("load index: %w: %q staged for both addition and removal", ErrCorruptState, p)
		}
	}
	return idx, nil
}

func (r *Repo) saveIndex(idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	if err := writeFileAtomic(r.indexPath(), append(data, '\n')); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}

// stageAdd records b for addition. A pending removal of the same path is
// cancelled instead. Content identical to HEAD's version is not staged,
// and any earlier staged version of the path is discarded.
func (r *Repo) stageAdd(idx *Index, head *object.CommitObj, b *object.Blob) error {
	if _, ok := idx.Remove[b.Path]; ok {
		delete(idx.Remove, b.Path)
		return nil
	}

	h := b.Hash()
	prev, staged := idx.Add[b.Path]
	if staged && prev != h {
		if err := r.Store.Delete(object.NamespaceStaging, prev); err != nil {
			return fmt.Errorf("stage %s: %w", b.Path, err)
		}
		delete(idx.Add, b.Path)
	}
	if tracked, ok := head.Lookup(b.Path); ok && tracked == h {
		return nil
	}
	if _, err := r.Store.WriteBlob(object.NamespaceStaging, b); err != nil {
		return fmt.Errorf("stage %s: %w", b.Path, err)
	}
	idx.Add[b.Path] = h
	return nil
}

// stageRemove unstages a pending addition of path and, when HEAD tracks
// path, records its removal and deletes the working file. A path that is
// neither staged nor tracked yields ErrNothingToRemove.
func (r *Repo) stageRemove(idx *Index, head *object.CommitObj, path string) error {
	staged, isStaged := idx.Add[path]
	if isStaged {
		if err := r.Store.Delete(object.NamespaceStaging, staged); err != nil {
			return fmt.Errorf("unstage %s: %w", path, err)
		}
		delete(idx.Add, path)
	}

	tracked, isTracked := head.Lookup(path)
	if !isTracked {
		if !isStaged {
			return fmt.Errorf("rm %s: %w", path, ErrNothingToRemove)
		}
		return nil
	}
	idx.Remove[path] = tracked
	if err := r.Work.Remove(path); err != nil {
		return fmt.Errorf("rm %s: %w", path, err)
	}
	return nil
}

// discardStaged drains idx and deletes the staged snapshots it referenced.
func (r *Repo) discardStaged(idx *Index) error {
	add, _ := idx.Drain()
	for p, h := range add {
		if err := r.Store.Delete(object.NamespaceStaging, h); err != nil {
			return fmt.Errorf("discard staged %s: %w", p, err)
		}
	}
	return nil
}

// Add stages the working-directory file at path.
func (r *Repo) Add(path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	data, err := r.Work.ReadFile(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("add %s: %w", rel, ErrFileNotExist)
		}
		return fmt.Errorf("add %s: %w", rel, err)
	}
	if err := r.stageAdd(idx, head, &object.Blob{Path: rel, Data: data}); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := r.saveIndex(idx); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	r.Logger.Info("file staged", "path", rel, "staged", idx.Add[rel] != "")
	return nil
}

// Remove unstages path and, if HEAD tracks it, stages its removal and
// deletes the working file.
func (r *Repo) Remove(path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	if err := r.stageRemove(idx, head, rel); err != nil {
		return err
	}
	if err := r.saveIndex(idx); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	r.Logger.Info("file removed", "path", rel)
	return nil
}

// repoRelPath converts a user-supplied path (absolute or relative to the
// repository root) to a clean slash-separated repository path.
func (r *Repo) repoRelPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return "", err
		}
		path = rel
	}
	rel, err := fsys.Clean(filepath.ToSlash(path))
	if err != nil {
		return "", err
	}
	if rel == DirName || hasDirPrefix(rel, DirName) {
		return "", fmt.Errorf("%w: %q is inside %s", fsys.ErrInvalidPath, path, DirName)
	}
	return rel, nil
}

func hasDirPrefix(p, dir string) bool {
	return len(p) > len(dir) && p[:len(dir)] == dir && p[len(dir)] == '/'
}
