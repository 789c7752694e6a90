package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

func testClock() *StepClock {
	return NewStepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)
}

// setupRepo initializes a repository in a temp dir with a deterministic
// clock.
func setupRepo(t *testing.T) (*Repo, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := Init(dir, nil, WithClock(testClock()))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
	return !errors.Is(err, os.ErrNotExist)
}

// commitFile writes, stages and commits a single file.
func commitFile(t *testing.T, r *Repo, dir, name, content, msg string) object.Hash {
	t.Helper()
	writeFile(t, dir, name, content)
	if err := r.Add(name); err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	h, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}

func headOf(t *testing.T, r *Repo) (*object.CommitObj, object.Hash) {
	t.Helper()
	_, h, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit(%s): %v", h, err)
	}
	return c, h
}

func mustIndex(t *testing.T, r *Repo) *Index {
	t.Helper()
	idx, err := r.loadIndex()
	if err != nil {
		t.Fatalf("loadIndex: %v", err)
	}
	return idx
}

func countObjects(t *testing.T, r *Repo, ns object.Namespace) int {
	t.Helper()
	hs, err := r.Store.List(ns)
	if err != nil {
		t.Fatalf("List(%s): %v", ns, err)
	}
	return len(hs)
}
