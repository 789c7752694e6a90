package repo

import (
	"fmt"
)

// CheckoutFile restores path from HEAD. HEAD and the staging index are
// not changed.
func (r *Repo) CheckoutFile(path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return r.materializeFile(rel, head)
}

// CheckoutFileAt restores path from the commit named by id, which may be
// abbreviated.
func (r *Repo) CheckoutFileAt(id, path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	h, err := r.ResolveCommit(id)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return r.materializeFile(rel, c)
}

// CheckoutBranch switches to branch name: the working tree is replaced by
// the branch tip's tree, the staging index is cleared, and name becomes
// the current branch.
func (r *Repo) CheckoutBranch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	tip, ok := st.Branches[name]
	if !ok {
		return fmt.Errorf("checkout %q: %w", name, ErrUnknownBranch)
	}
	if name == st.Branch {
		return fmt.Errorf("checkout %q: %w", name, ErrAlreadyOnBranch)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	target, err := r.Store.ReadCommit(tip)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.checkUntracked(head, target, idx); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := r.synchronizeTree(head, target); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.discardStaged(idx); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	from := st.Branch
	st.switchTo(name)
	if err := r.save(st, idx); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	r.Logger.Info("switched branch", "from", from, "to", name, "head", tip)
	return nil
}
