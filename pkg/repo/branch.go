package repo

import (
	"fmt"
)

// CreateBranch creates branch name at HEAD. The current branch is not
// changed.
func (r *Repo) CreateBranch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("branch: %w", err)
	}
	if err := st.createBranch(name, st.Head); err != nil {
		return fmt.Errorf("branch: %w", err)
	}
	st.note(name, "", st.Head, "branch: created from "+st.Branch)
	if err := r.saveState(st); err != nil {
		return fmt.Errorf("branch: %w", err)
	}
	r.Logger.Info("branch created", "branch", name, "at", st.Head)
	return nil
}

// DeleteBranch removes branch name. Its commits are kept.
func (r *Repo) DeleteBranch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("rm-branch: %w", err)
	}
	if err := st.deleteBranch(name); err != nil {
		return fmt.Errorf("rm-branch: %w", err)
	}
	if err := r.saveState(st); err != nil {
		return fmt.Errorf("rm-branch: %w", err)
	}
	r.Logger.Info("branch deleted", "branch", name)
	return nil
}

// ListBranches returns all branch names sorted, and the current branch.
func (r *Repo) ListBranches() ([]string, string, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, "", fmt.Errorf("branches: %w", err)
	}
	return st.branchNames(), st.Branch, nil
}
