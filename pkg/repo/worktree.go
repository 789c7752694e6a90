package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// materializeFile overwrites the working file at path with its version in
// c. ErrNotInCommit if c does not track path.
func (r *Repo) materializeFile(path string, c *object.CommitObj) error {
	h, ok := c.Lookup(path)
	if !ok {
		return fmt.Errorf("checkout %s: %w", path, ErrNotInCommit)
	}
	b, err := r.Store.ReadBlob(object.NamespaceBlobs, h)
	if err != nil {
		return fmt.Errorf("checkout %s: read blob %s: %w", path, h.Short(7), err)
	}
	if err := r.Work.WriteFile(path, b.Data); err != nil {
		return fmt.Errorf("checkout %s: %w", path, err)
	}
	return nil
}

// synchronizeTree makes the working tree match to: files tracked by from
// but not by to are deleted, and every file tracked by to is written.
func (r *Repo) synchronizeTree(from, to *object.CommitObj) error {
	for _, p := range sortedPaths(from.Files) {
		if _, ok := to.Files[p]; ok {
			continue
		}
		if err := r.Work.Remove(p); err != nil {
			return fmt.Errorf("sync tree: %w", err)
		}
	}
	for _, p := range sortedPaths(to.Files) {
		if err := r.materializeFile(p, to); err != nil {
			return fmt.Errorf("sync tree: %w", err)
		}
	}
	return nil
}

// workingFiles lists every non-ignored file in the working tree.
func (r *Repo) workingFiles() ([]string, error) {
	files, err := r.Work.List(r.ignoreChecker().Skip)
	if err != nil {
		return nil, fmt.Errorf("list working tree: %w", err)
	}
	return files, nil
}

// untrackedFiles returns working files neither tracked by head nor staged
// for addition.
func (r *Repo) untrackedFiles(head *object.CommitObj, idx *Index) ([]string, error) {
	files, err := r.workingFiles()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range files {
		if _, ok := head.Files[p]; ok {
			continue
		}
		if _, ok := idx.Add[p]; ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// checkUntracked returns ErrUntrackedFileBlocking when any untracked file
// is present in the working tree. Ignored files are skipped by that scan,
// but an ignored file still blocks when target would write its path.
// target may be nil.
func (r *Repo) checkUntracked(head, target *object.CommitObj, idx *Index) error {
	untracked, err := r.untrackedFiles(head, idx)
	if err != nil {
		return err
	}
	if len(untracked) > 0 {
		return fmt.Errorf("%w: %s", ErrUntrackedFileBlocking, untracked[0])
	}
	if target == nil {
		return nil
	}
	for _, p := range sortedPaths(target.Files) {
		if _, ok := head.Files[p]; ok {
			continue
		}
		if _, ok := idx.Add[p]; ok {
			continue
		}
		if r.Work.Exists(p) {
			return fmt.Errorf("%w: %s", ErrUntrackedFileBlocking, p)
		}
	}
	return nil
}

func sortedPaths(m map[string]object.Hash) []string {
	out := make([]string, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
