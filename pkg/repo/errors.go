package repo

import (
	"errors"
	"fmt"
)

// Root error kinds. Callers classify failures with errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("a branch with that name already exists")
	ErrNothingToRemove       = errors.New("no reason to remove the file")
	ErrUntrackedFileBlocking = errors.New("there is an untracked file in the way; delete it, or add and commit it first")
	ErrNoChangesToCommit     = errors.New("no changes added to the commit")
	ErrUncommittedChanges    = errors.New("you have uncommitted changes")
	ErrCannotDeleteCurrent   = errors.New("cannot remove the current branch")
	ErrAmbiguousShortID      = errors.New("ambiguous commit id")
)

// Lookup failures, all of which wrap ErrNotFound.
var (
	ErrUnknownBranch = fmt.Errorf("%w: a branch with that name does not exist", ErrNotFound)
	ErrNoSuchCommit  = fmt.Errorf("%w: no commit with that id exists", ErrNotFound)
	ErrNotInCommit   = fmt.Errorf("%w: file does not exist in that commit", ErrNotFound)
	ErrNoMatchingLog = fmt.Errorf("%w: found no commit with that message", ErrNotFound)
)

var (
	ErrEmptyMessage     = errors.New("please enter a commit message")
	ErrFileNotExist     = errors.New("file does not exist")
	ErrAlreadyOnBranch  = errors.New("no need to checkout the current branch")
	ErrMergeWithSelf    = errors.New("cannot merge a branch with itself")
	ErrNotRepository    = errors.New("not in an initialized gitlet directory")
	ErrRepositoryExists = errors.New("a gitlet version-control system already exists in the current directory")
	ErrCorruptState     = errors.New("corrupt repository state")
	ErrDigestCollision  = errors.New("commit digest already exists")
)
