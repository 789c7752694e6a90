package repo

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

var errNoSplitPoint = errors.New("no common ancestor")

// MergeOutcome says how a merge finished.
type MergeOutcome int

const (
	// MergeCommitted means a merge commit was created.
	MergeCommitted MergeOutcome = iota
	// MergeFastForward means the current branch moved to the given tip.
	MergeFastForward
	// MergeAncestor means the given branch was already contained in the
	// current one and nothing changed.
	MergeAncestor
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeFastForward:
		return "fast-forward"
	case MergeAncestor:
		return "ancestor"
	default:
		return "merged"
	}
}

// MergeRule identifies which per-file classification rule applied.
// RuleNone leaves the current version untouched.
type MergeRule int

const (
	RuleNone MergeRule = iota
	// Modified only in given: take given's version.
	RuleTakeGiven
	// Added only in given.
	RuleAddedInGiven
	// Unmodified in current, removed in given.
	RuleDeletedInGiven
	// Modified differently on both sides.
	RuleConflictBothModified
	// Modified in current, removed in given.
	RuleConflictDeletedInGiven
	// Removed in current, modified in given.
	RuleConflictDeletedInCurrent
	// Added on both sides with different content.
	RuleConflictBothAdded
)

// IsConflict reports whether the rule produces conflict markers.
func (r MergeRule) IsConflict() bool {
	return r >= RuleConflictBothModified
}

func (r MergeRule) String() string {
	switch r {
	case RuleTakeGiven:
		return "take-given"
	case RuleAddedInGiven:
		return "added-in-given"
	case RuleDeletedInGiven:
		return "deleted-in-given"
	case RuleConflictBothModified:
		return "conflict-both-modified"
	case RuleConflictDeletedInGiven:
		return "conflict-deleted-in-given"
	case RuleConflictDeletedInCurrent:
		return "conflict-deleted-in-current"
	case RuleConflictBothAdded:
		return "conflict-both-added"
	default:
		return "unchanged"
	}
}

// fileVersion is one side's view of a path.
type fileVersion struct {
	present bool
	digest  object.Hash
}

func versionOf(c *object.CommitObj, path string) fileVersion {
	h, ok := c.Lookup(path)
	return fileVersion{present: ok, digest: h}
}

// classify picks the rule for a path given its split-point, current and
// given versions. The rules are mutually exclusive.
func classify(s, c, g fileVersion) MergeRule {
	switch {
	case s.present && c.present && g.present && s.digest == c.digest && s.digest != g.digest:
		return RuleTakeGiven
	case !s.present && !c.present && g.present:
		return RuleAddedInGiven
	case s.present && c.present && !g.present && s.digest == c.digest:
		return RuleDeletedInGiven
	case s.present && c.present && g.present && s.digest != c.digest && s.digest != g.digest && c.digest != g.digest:
		return RuleConflictBothModified
	case s.present && c.present && !g.present && s.digest != c.digest:
		return RuleConflictDeletedInGiven
	case s.present && !c.present && g.present && s.digest != g.digest:
		return RuleConflictDeletedInCurrent
	case !s.present && c.present && g.present && c.digest != g.digest:
		return RuleConflictBothAdded
	default:
		return RuleNone
	}
}

// FileMergeReport records how one path was merged.
type FileMergeReport struct {
	Path string
	Rule MergeRule
}

// MergeReport summarizes a merge.
type MergeReport struct {
	Outcome      MergeOutcome
	Current      string
	Given        string
	SplitPoint   object.Hash
	Head         object.Hash // HEAD after the merge
	Files        []FileMergeReport
	HasConflicts bool
}

// SplitPoint returns the latest common ancestor of current and given.
// Only primary-parent links are followed.
func (r *Repo) SplitPoint(current, given object.Hash) (object.Hash, error) {
	ancestors := make(map[object.Hash]bool)
	for h := given; h != ""; {
		ancestors[h] = true
		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return "", fmt.Errorf("split point: read %s: %w", h.Short(7), err)
		}
		h = c.Parent
	}
	for h := current; h != ""; {
		if ancestors[h] {
			return h, nil
		}
		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return "", fmt.Errorf("split point: read %s: %w", h.Short(7), err)
		}
		h = c.Parent
	}
	return "", fmt.Errorf("split point %s..%s: %w: %w", current.Short(7), given.Short(7), ErrCorruptState, errNoSplitPoint)
}

// Merge merges branch given into the current branch.
func (r *Repo) Merge(given string) (*MergeReport, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	head, err := r.headCommit(st)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	// The given tree is only known when the branch exists; the unknown
	// branch error still comes after the untracked check.
	givenTip, ok := st.Branches[given]
	var givenCommit *object.CommitObj
	if ok {
		if givenCommit, err = r.Store.ReadCommit(givenTip); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
	}
	if err := r.checkUntracked(head, givenCommit, idx); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("merge %q: %w", given, ErrUnknownBranch)
	}
	if given == st.Branch {
		return nil, fmt.Errorf("merge %q: %w", given, ErrMergeWithSelf)
	}
	if !idx.IsEmpty() {
		return nil, fmt.Errorf("merge: %w", ErrUncommittedChanges)
	}

	split, err := r.SplitPoint(st.Head, givenTip)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	rep := &MergeReport{Current: st.Branch, Given: given, SplitPoint: split, Head: st.Head}

	switch split {
	case givenTip:
		rep.Outcome = MergeAncestor
		r.Logger.Info("merge: given branch is an ancestor", "given", given, "current", st.Branch)
		return rep, nil
	case st.Head:
		if err := r.resetTo(st, idx, head, givenTip, "merge "+given+": fast-forward"); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
		if err := r.save(st, idx); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
		rep.Outcome = MergeFastForward
		rep.Head = givenTip
		r.Logger.Info("merge: fast-forwarded", "given", given, "current", st.Branch, "head", givenTip)
		return rep, nil
	}

	splitCommit, err := r.Store.ReadCommit(split)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	for _, p := range unionPaths(splitCommit, head, givenCommit) {
		rule := classify(versionOf(splitCommit, p), versionOf(head, p), versionOf(givenCommit, p))
		if rule == RuleNone {
			continue
		}
		if err := r.applyMergeRule(idx, head, givenCommit, p, rule); err != nil {
			return nil, fmt.Errorf("merge: %s: %w", p, err)
		}
		r.Logger.Debug("merge: classified", "path", p, "rule", rule)
		rep.Files = append(rep.Files, FileMergeReport{Path: p, Rule: rule})
		if rule.IsConflict() {
			rep.HasConflicts = true
		}
	}

	message := fmt.Sprintf("Merged %s into %s.", given, st.Branch)
	h, err := r.commit(st, idx, message, givenTip)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if err := r.save(st, idx); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	rep.Outcome = MergeCommitted
	rep.Head = h
	if rep.HasConflicts {
		r.Logger.Warn("merge: conflicts recorded", "given", given, "current", st.Branch, "commit", h)
	}
	return rep, nil
}

func (r *Repo) applyMergeRule(idx *Index, head, given *object.CommitObj, path string, rule MergeRule) error {
	switch rule {
	case RuleTakeGiven, RuleAddedInGiven:
		if err := r.materializeFile(path, given); err != nil {
			return err
		}
		b, err := r.Store.ReadBlob(object.NamespaceBlobs, given.Files[path])
		if err != nil {
			return err
		}
		return r.stageAdd(idx, head, b)
	case RuleDeletedInGiven:
		return r.stageRemove(idx, head, path)
	}

	ours, err := r.blobData(head, path)
	if err != nil {
		return err
	}
	theirs, err := r.blobData(given, path)
	if err != nil {
		return err
	}
	merged := renderConflict(ours, theirs)
	if err := r.Work.WriteFile(path, merged); err != nil {
		return err
	}
	return r.stageAdd(idx, head, &object.Blob{Path: path, Data: merged})
}

// blobData returns c's content for path, or nil when c does not track it.
func (r *Repo) blobData(c *object.CommitObj, path string) ([]byte, error) {
	h, ok := c.Lookup(path)
	if !ok {
		return nil, nil
	}
	b, err := r.Store.ReadBlob(object.NamespaceBlobs, h)
	if err != nil {
		return nil, err
	}
	return b.Data, nil
}

// renderConflict wraps both sides in conflict markers. An absent side
// contributes nothing.
func renderConflict(ours, theirs []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(ours)
	if len(ours) > 0 && ours[len(ours)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("=======\n")
	buf.Write(theirs)
	if len(theirs) > 0 && theirs[len(theirs)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}

func unionPaths(commits ...*object.CommitObj) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range commits {
		for p := range c.Files {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}
