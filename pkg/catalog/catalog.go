// Package catalog keeps a queryable index of every commit ever created so
// history-wide operations (global log, find by message) do not have to
// decode every stored commit.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Entry is one catalogued commit.
type Entry struct {
	Hash      object.Hash
	Message   string
	Timestamp string
}

// Index records commits and answers history-wide queries.
type Index interface {
	// Record adds an entry. Recording a digest twice is a no-op.
	Record(e Entry) error
	// All returns every entry in the order it was recorded.
	All() ([]Entry, error)
	// Find returns the digests of entries whose message equals msg exactly.
	Find(msg string) ([]object.Hash, error)
	Close() error
}

// Config selects a catalog backend.
type Config struct {
	Type string `toml:"type"`
}

// ErrUnknownBackend is returned for an unrecognised Config.Type.
var ErrUnknownBackend = errors.New("unknown catalog type")

// ErrCorrupt is returned when a stored catalog fails validation on load.
var ErrCorrupt = errors.New("corrupt catalog")

// NewIndexFromConfig opens the Index described by cfg inside dir.
func NewIndexFromConfig(cfg Config, dir string) (Index, error) {
	switch cfg.Type {
	case "", "file":
		return NewFileIndex(filepath.Join(dir, "catalog.json")), nil
	case "sqlite":
		return NewSQLiteIndex(filepath.Join(dir, "catalog.db"))
	case "memory":
		return NewSQLiteIndex(":memory:")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Type)
	}
}
