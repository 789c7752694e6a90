package repo

import (
	"errors"
	"strings"
	"testing"
)

func TestReflog_RecordsTipMoves(t *testing.T) {
	r, dir := setupRepo(t)
	_, root := headOf(t, r)
	h1 := commitFile(t, r, dir, "a.txt", "1", "first")
	if _, err := r.Reset(string(root)); err != nil {
		t.Fatal(err)
	}

	entries, err := r.Reflog("", 0)
	if err != nil {
		t.Fatalf("Reflog: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("reflog has %d entries, want 3: %+v", len(entries), entries)
	}
	if entries[0].NewHash != root || entries[0].OldHash != h1 || !strings.HasPrefix(entries[0].Reason, "reset") {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if entries[1].NewHash != h1 || entries[1].Reason != "commit: first" {
		t.Errorf("commit entry = %+v", entries[1])
	}
	if entries[2].OldHash != "" || entries[2].Reason != "init" {
		t.Errorf("init entry = %+v", entries[2])
	}

	limited, err := r.Reflog("master", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limited reflog has %d entries", len(limited))
	}
}

func TestReflog_UnknownBranch(t *testing.T) {
	r, _ := setupRepo(t)
	if _, err := r.Reflog("nope", 0); !errors.Is(err, ErrUnknownBranch) {
		t.Fatalf("error = %v, want ErrUnknownBranch", err)
	}
}
