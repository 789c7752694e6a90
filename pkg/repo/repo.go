package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/catalog"
	"github.com/odvcencio/gitlet/pkg/fsys"
	"github.com/odvcencio/gitlet/pkg/object"
)

// Repo represents an opened gitlet repository.
type Repo struct {
	RootDir   string        // working directory root
	GitletDir string        // .gitlet/ directory
	Store     *object.Store // content-addressed object store
	Work      fsys.FS       // working-directory files
	Catalog   catalog.Index // commit digest -> message index
	Config    *Config
	Logger    Logger
	Clock     Clock
}

// Option customises a Repo returned by Init or Open.
type Option func(*Repo)

func WithLogger(l Logger) Option {
	return func(r *Repo) { r.Logger = l }
}

func WithClock(c Clock) Option {
	return func(r *Repo) { r.Clock = c }
}

// WithWorkTree replaces the working-directory file capability.
func WithWorkTree(f fsys.FS) Option {
	return func(r *Repo) { r.Work = f }
}

func newRepo(root, gitletDir string, cfg *Config, opts []Option) (*Repo, error) {
	r := &Repo{
		RootDir:   root,
		GitletDir: gitletDir,
		Store:     object.NewStore(gitletDir, object.WithCompression(cfg.Objects.Compression == "zstd")),
		Work:      fsys.NewOSFS(root),
		Config:    cfg,
		Logger:    NewNopLogger(),
		Clock:     RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	idx, err := catalog.NewIndexFromConfig(cfg.Catalog, gitletDir)
	if err != nil {
		return nil, err
	}
	r.Catalog = idx
	return r, nil
}

// Close releases the commit catalog.
func (r *Repo) Close() error {
	if r.Catalog == nil {
		return nil
	}
	return r.Catalog.Close()
}

// writeFileAtomic writes data to a temp file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s: mkdir: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: close: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: rename: %w", path, err)
	}
	return nil
}
