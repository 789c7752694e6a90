package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Reset moves the current branch to the commit named by id and makes the
// working tree match it. Staged changes are discarded.
func (r *Repo) Reset(id string) (object.Hash, error) {
	target, err := r.ResolveCommit(id)
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	st, err := r.loadState()
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	c, err := r.Store.ReadCommit(target)
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	if err := r.checkUntracked(head, c, idx); err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	if err := r.resetTo(st, idx, head, target, "reset: moving to "+target.Short(7)); err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	if err := r.save(st, idx); err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	r.Logger.Info("branch reset", "branch", st.Branch, "head", target)
	return target, nil
}

// resetTo points the current branch at target and makes the working tree
// and staging index match it.
func (r *Repo) resetTo(st *State, idx *Index, head *object.CommitObj, target object.Hash, reason string) error {
	c, err := r.Store.ReadCommit(target)
	if err != nil {
		return err
	}
	if err := r.synchronizeTree(head, c); err != nil {
		return err
	}
	if err := r.discardStaged(idx); err != nil {
		return err
	}
	return st.advanceBranch(st.Branch, target, reason)
}
