package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ResolveCommit maps a full or abbreviated commit id to a stored commit
// digest. Abbreviations match by prefix; more than one match is
// ErrAmbiguousShortID.
func (r *Repo) ResolveCommit(id string) (object.Hash, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || len(id) > object.HashLen {
		return "", fmt.Errorf("%w: %q", ErrNoSuchCommit, id)
	}
	if h := object.Hash(id); h.IsFull() {
		if r.Store.Has(object.NamespaceCommits, h) {
			return h, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNoSuchCommit, id)
	}

	all, err := r.Store.List(object.NamespaceCommits)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", id, err)
	}
	var matches []object.Hash
	for _, h := range all {
		if strings.HasPrefix(string(h), id) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNoSuchCommit, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d commits", ErrAmbiguousShortID, id, len(matches))
	}
}
