package repo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ChangeKind describes an unstaged modification.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// UnstagedChange is a working file whose content differs from what the
// next commit would record.
type UnstagedChange struct {
	Path string
	Kind ChangeKind
}

// StatusReport is the result of Status. Every list is sorted.
type StatusReport struct {
	Current   string
	Branches  []string
	Staged    []string
	Removed   []string
	Unstaged  []UnstagedChange
	Untracked []string
}

// Status compares HEAD, the staging index and the working tree.
func (r *Repo) Status() (*StatusReport, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	files, err := r.workingFiles()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	rep := &StatusReport{
		Current:  st.Branch,
		Branches: st.branchNames(),
		Staged:   sortedPaths(idx.Add),
		Removed:  sortedPaths(idx.Remove),
	}

	hashWorking := func(p string) (object.Hash, bool, error) {
		data, err := r.Work.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", false, nil
			}
			return "", false, err
		}
		return object.HashBlob(p, data), true, nil
	}

	// Staged for addition: compare the staged digest with the working file.
	for _, p := range rep.Staged {
		h, ok, err := hashWorking(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		switch {
		case !ok:
			rep.Unstaged = append(rep.Unstaged, UnstagedChange{Path: p, Kind: ChangeDeleted})
		case h != idx.Add[p]:
			rep.Unstaged = append(rep.Unstaged, UnstagedChange{Path: p, Kind: ChangeModified})
		}
	}
	// Tracked and not staged either way: compare with HEAD.
	for _, p := range sortedPaths(head.Files) {
		if _, ok := idx.Add[p]; ok {
			continue
		}
		if _, ok := idx.Remove[p]; ok {
			continue
		}
		h, ok, err := hashWorking(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		switch {
		case !ok:
			rep.Unstaged = append(rep.Unstaged, UnstagedChange{Path: p, Kind: ChangeDeleted})
		case h != head.Files[p]:
			rep.Unstaged = append(rep.Unstaged, UnstagedChange{Path: p, Kind: ChangeModified})
		}
	}
	sort.Slice(rep.Unstaged, func(i, j int) bool { return rep.Unstaged[i].Path < rep.Unstaged[j].Path })

	// Untracked: neither staged nor tracked, or staged for removal and
	// then re-created.
	for _, p := range files {
		if _, ok := idx.Add[p]; ok {
			continue
		}
		_, tracked := head.Files[p]
		_, removed := idx.Remove[p]
		if !tracked || removed {
			rep.Untracked = append(rep.Untracked, p)
		}
	}
	return rep, nil
}

// WriteStatus prints rep in five sections.
func WriteStatus(w io.Writer, rep *StatusReport) error {
	var lines []string
	lines = append(lines, "=== Branches ===")
	for _, b := range rep.Branches {
		if b == rep.Current {
			b = "*" + b
		}
		lines = append(lines, b)
	}
	lines = append(lines, "", "=== Staged Files ===")
	lines = append(lines, rep.Staged...)
	lines = append(lines, "", "=== Removed Files ===")
	lines = append(lines, rep.Removed...)
	lines = append(lines, "", "=== Modifications Not Staged For Commit ===")
	for _, c := range rep.Unstaged {
		lines = append(lines, fmt.Sprintf("%s (%s)", c.Path, c.Kind))
	}
	lines = append(lines, "", "=== Untracked Files ===")
	lines = append(lines, rep.Untracked...)
	lines = append(lines, "")

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
