package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/catalog"
	"github.com/odvcencio/gitlet/pkg/object"
)

// Commit records the staged delta as a new commit on the current branch
// and returns its digest.
func (r *Repo) Commit(message string) (object.Hash, error) {
	st, err := r.loadState()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	h, err := r.commit(st, idx, message, "")
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if err := r.save(st, idx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return h, nil
}

// commit builds a commit from HEAD's tree with idx applied, promotes the
// staged snapshots, records the commit and advances the current branch.
// idx is drained on success. A non-empty mergeParent marks a merge commit,
// which may carry an empty delta.
func (r *Repo) commit(st *State, idx *Index, message string, mergeParent object.Hash) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if idx.IsEmpty() && mergeParent == "" {
		return "", ErrNoChangesToCommit
	}
	parent, err := r.headCommit(st)
	if err != nil {
		return "", err
	}

	files := make(map[string]object.Hash, len(parent.Files)+len(idx.Add))
	for p, h := range parent.Files {
		files[p] = h
	}
	for p, h := range idx.Add {
		files[p] = h
	}
	for p := range idx.Remove {
		delete(files, p)
	}

	c := &object.CommitObj{
		Message:     message,
		Timestamp:   formatTimestamp(r.Clock.Now()),
		Parent:      st.Head,
		MergeParent: mergeParent,
		Branch:      st.Branch,
		Files:       files,
	}
	h := c.Hash()
	if r.Store.Has(object.NamespaceCommits, h) {
		return "", fmt.Errorf("%w: %s (message %q at %s)", ErrDigestCollision, h.Short(7), message, c.Timestamp)
	}

	for p, blob := range idx.Add {
		if err := r.Store.Promote(blob); err != nil {
			return "", fmt.Errorf("promote %s: %w", p, err)
		}
	}
	if _, err := r.Store.WriteCommit(c); err != nil {
		return "", err
	}
	if err := r.Catalog.Record(catalog.Entry{Hash: h, Message: message, Timestamp: c.Timestamp}); err != nil {
		return "", err
	}
	reason := "commit: " + firstLine(message)
	if mergeParent != "" {
		reason = "commit (merge): " + firstLine(message)
	}
	if err := st.advanceBranch(st.Branch, h, reason); err != nil {
		return "", err
	}
	idx.Drain()

	r.Logger.Info("commit created", "hash", h, "branch", st.Branch, "files", len(files), "merge", mergeParent != "")
	return h, nil
}

// save persists both the pointer state and the staging index.
func (r *Repo) save(st *State, idx *Index) error {
	if err := r.saveState(st); err != nil {
		return err
	}
	return r.saveIndex(idx)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
