package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

// State is the mutable pointer set of a repository: the current branch,
// the HEAD commit and the branch table. Operations load it once, mutate it
// in memory and save it when they finish.
type State struct {
	Branch   string
	Head     object.Hash
	Branches map[string]object.Hash

	saved   map[string]object.Hash // branch table as last loaded or saved
	pending []tipMove              // reflog lines to append on save
}

type tipMove struct {
	branch   string
	from, to object.Hash
	reason   string
}

func newState(branch string) *State {
	return &State{
		Branch:   branch,
		Branches: make(map[string]object.Hash),
		saved:    make(map[string]object.Hash),
	}
}

// note queues a reflog entry for branch.
func (s *State) note(branch string, from, to object.Hash, reason string) {
	s.pending = append(s.pending, tipMove{branch: branch, from: from, to: to, reason: reason})
}

// advanceBranch moves name's tip to h. HEAD follows when name is the
// current branch.
func (s *State) advanceBranch(name string, h object.Hash, reason string) error {
	old, ok := s.Branches[name]
	if !ok {
		return fmt.Errorf("advance %q: %w", name, ErrUnknownBranch)
	}
	s.Branches[name] = h
	if name == s.Branch {
		s.Head = h
	}
	s.note(name, old, h, reason)
	return nil
}

func (s *State) createBranch(name string, h object.Hash) error {
	if !validBranchName(name) {
		return fmt.Errorf("create branch %q: invalid branch name", name)
	}
	if _, ok := s.Branches[name]; ok {
		return fmt.Errorf("create branch %q: %w", name, ErrAlreadyExists)
	}
	s.Branches[name] = h
	return nil
}

func (s *State) deleteBranch(name string) error {
	if _, ok := s.Branches[name]; !ok {
		return fmt.Errorf("delete branch %q: %w", name, ErrUnknownBranch)
	}
	if name == s.Branch {
		return fmt.Errorf("delete branch %q: %w", name, ErrCannotDeleteCurrent)
	}
	delete(s.Branches, name)
	return nil
}

// switchTo makes name the current branch and moves HEAD to its tip.
func (s *State) switchTo(name string) {
	s.Branch = name
	s.Head = s.Branches[name]
}

// branchNames returns the branch table keys, sorted.
func (s *State) branchNames() []string {
	names := make([]string, 0, len(s.Branches))
	for name := range s.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validBranchName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, "-") {
		return false
	}
	return !strings.ContainsAny(name, "/\\ \t\r\n") && !strings.HasPrefix(name, ".tmp-")
}

func (r *Repo) headsDir() string {
	return filepath.Join(r.GitletDir, "refs", "heads")
}

func readPointer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// loadState reads HEAD, BRANCH and refs/heads/ and validates them:
// every tip must name a stored commit and HEAD must equal the current
// branch's tip.
func (r *Repo) loadState() (*State, error) {
	branch, err := readPointer(filepath.Join(r.GitletDir, "BRANCH"))
	if err != nil {
		return nil, fmt.Errorf("load state: %w: BRANCH: %w", ErrCorruptState, err)
	}
	head, err := readPointer(filepath.Join(r.GitletDir, "HEAD"))
	if err != nil {
		return nil, fmt.Errorf("load state: %w: HEAD: %w", ErrCorruptState, err)
	}

	st := newState(branch)
	st.Head = object.Hash(head)

	entries, err := os.ReadDir(r.headsDir())
	if err != nil {
		return nil, fmt.Errorf("load state: %w: refs: %w", ErrCorruptState, err)
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		tip, err := readPointer(filepath.Join(r.headsDir(), e.Name()))
		if err != nil {
			return nil, fmt.Errorf("load state: %w: branch %q: %w", ErrCorruptState, e.Name(), err)
		}
		h := object.Hash(tip)
		if !h.IsFull() || !r.Store.Has(object.NamespaceCommits, h) {
			return nil, fmt.Errorf("load state: %w: branch %q points at unknown commit %q", ErrCorruptState, e.Name(), tip)
		}
		st.Branches[e.Name()] = h
		st.saved[e.Name()] = h
	}

	tip, ok := st.Branches[branch]
	if !ok {
		return nil, fmt.Errorf("load state: %w: current branch %q has no ref", ErrCorruptState, branch)
	}
	if tip != st.Head {
		return nil, fmt.Errorf("load state: %w: HEAD %s does not match branch %q tip %s", ErrCorruptState, st.Head, branch, tip)
	}
	return st, nil
}

// saveState writes back every changed branch ref, removes deleted ones,
// rewrites BRANCH and HEAD and appends queued reflog entries.
func (r *Repo) saveState(st *State) error {
	for name, h := range st.Branches {
		if st.saved[name] == h {
			continue
		}
		if err := writeFileAtomic(filepath.Join(r.headsDir(), name), []byte(string(h)+"\n")); err != nil {
			return fmt.Errorf("save state: branch %q: %w", name, err)
		}
	}
	for name := range st.saved {
		if _, ok := st.Branches[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(r.headsDir(), name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("save state: delete branch %q: %w", name, err)
		}
		os.Remove(r.reflogPath(name))
	}
	if err := writeFileAtomic(filepath.Join(r.GitletDir, "BRANCH"), []byte(st.Branch+"\n")); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(r.GitletDir, "HEAD"), []byte(string(st.Head)+"\n")); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	for _, m := range st.pending {
		if err := r.appendReflog(m.branch, m.from, m.to, m.reason); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	st.pending = nil
	st.saved = make(map[string]object.Hash, len(st.Branches))
	for name, h := range st.Branches {
		st.saved[name] = h
	}
	return nil
}

// headCommit reads the commit HEAD points at.
func (r *Repo) headCommit(st *State) (*object.CommitObj, error) {
	c, err := r.Store.ReadCommit(st.Head)
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit %s: %w", st.Head, err)
	}
	return c, nil
}

// Head returns the current branch name and HEAD digest.
func (r *Repo) Head() (string, object.Hash, error) {
	st, err := r.loadState()
	if err != nil {
		return "", "", err
	}
	return st.Branch, st.Head, nil
}
