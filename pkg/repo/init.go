package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/odvcencio/gitlet/pkg/catalog"
	"github.com/odvcencio/gitlet/pkg/object"
)

// DirName is the repository marker directory.
const DirName = ".gitlet"

const rootMessage = "initial commit"

// Init creates a new repository at path: the .gitlet/ directory tree,
// config.toml, and the root commit on the default branch. A nil cfg uses
// DefaultConfig. Returns ErrRepositoryExists if .gitlet/ already exists.
func Init(path string, cfg *Config, opts ...Option) (*Repo, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	gitletDir := filepath.Join(root, DirName)
	if _, err := os.Stat(gitletDir); err == nil {
		return nil, fmt.Errorf("init: %w", ErrRepositoryExists)
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.applyDefaults()
	if cfg.RepoID == "" {
		cfg.RepoID = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	dirs := []string{
		filepath.Join(gitletDir, "objects", string(object.NamespaceBlobs)),
		filepath.Join(gitletDir, "objects", string(object.NamespaceCommits)),
		filepath.Join(gitletDir, "objects", string(object.NamespaceStaging)),
		filepath.Join(gitletDir, "refs", "heads"),
		filepath.Join(gitletDir, "logs", "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}
	if err := writeConfig(gitletDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r, err := newRepo(root, gitletDir, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	rootCommit := &object.CommitObj{
		Message:   rootMessage,
		Timestamp: rootTimestamp(),
		Branch:    cfg.DefaultBranch,
		Files:     map[string]object.Hash{},
	}
	h, err := r.Store.WriteCommit(rootCommit)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("init: write root commit: %w", err)
	}
	if err := r.Catalog.Record(catalog.Entry{Hash: h, Message: rootCommit.Message, Timestamp: rootCommit.Timestamp}); err != nil {
		r.Close()
		return nil, fmt.Errorf("init: %w", err)
	}

	st := newState(cfg.DefaultBranch)
	if err := st.createBranch(cfg.DefaultBranch, h); err != nil {
		r.Close()
		return nil, fmt.Errorf("init: %w", err)
	}
	st.Head = h
	st.note(cfg.DefaultBranch, "", h, "init")
	if err := r.saveState(st); err != nil {
		r.Close()
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.saveIndex(newIndex()); err != nil {
		r.Close()
		return nil, fmt.Errorf("init: %w", err)
	}

	r.Logger.Info("repository initialized", "root", root, "branch", cfg.DefaultBranch, "repo_id", cfg.RepoID, "commit", h)
	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository. Returns ErrNotRepository if none is found.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitletDir := filepath.Join(cur, DirName)
		info, err := os.Stat(gitletDir)
		if err == nil && info.IsDir() {
			cfg, err := readConfig(gitletDir)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			r, err := newRepo(cur, gitletDir, cfg, opts)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return r, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open: %w", err)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: %w", ErrNotRepository)
		}
		cur = parent
	}
}
