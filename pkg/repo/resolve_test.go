package repo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResolveCommit(t *testing.T) {
	r, dir := setupRepo(t)
	h := commitFile(t, r, dir, "a.txt", "a", "a")

	for _, id := range []string{string(h), h.Short(6), strings.ToUpper(h.Short(12))} {
		got, err := r.ResolveCommit(id)
		if err != nil {
			t.Errorf("ResolveCommit(%q): %v", id, err)
			continue
		}
		if got != h {
			t.Errorf("ResolveCommit(%q) = %s, want %s", id, got, h)
		}
	}
	for _, id := range []string{"", "zz", strings.Repeat("a", 65)} {
		if _, err := r.ResolveCommit(id); !errors.Is(err, ErrNoSuchCommit) {
			t.Errorf("ResolveCommit(%q) error = %v, want ErrNoSuchCommit", id, err)
		}
	}
}

func TestResolveCommit_Ambiguous(t *testing.T) {
	r, dir := setupRepo(t)
	// 17 commits over 16 possible leading hex digits guarantees a shared
	// one-character prefix.
	for i := 0; i < 16; i++ {
		commitFile(t, r, dir, "a.txt", fmt.Sprint(i), fmt.Sprintf("c%d", i))
	}
	log, err := r.GlobalLog()
	if err != nil {
		t.Fatal(err)
	}
	counts := map[byte]int{}
	for _, e := range log {
		counts[e.Hash[0]]++
	}
	for prefix, n := range counts {
		if n < 2 {
			continue
		}
		if _, err := r.ResolveCommit(string(prefix)); !errors.Is(err, ErrAmbiguousShortID) {
			t.Errorf("ResolveCommit(%q) error = %v, want ErrAmbiguousShortID", string(prefix), err)
		}
		return
	}
	t.Fatal("no shared prefix among 17 commits")
}
