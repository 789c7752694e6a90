package object

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHashBytesDeterminism(t *testing.T) {
	data := []byte("hello world")
	h1 := HashBytes(data)
	h2 := HashBytes(data)
	if h1 != h2 {
		t.Errorf("HashBytes not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != HashLen {
		t.Errorf("Hash length: got %d, want %d", len(h1), HashLen)
	}
}

func TestHashBlobIncludesPath(t *testing.T) {
	data := []byte("same bytes")
	h1 := HashBlob("a.txt", data)
	h2 := HashBlob("b.txt", data)
	if h1 == h2 {
		t.Error("identical content under different paths produced the same digest")
	}
	if h1 != HashBlob("a.txt", []byte("same bytes")) {
		t.Error("HashBlob not deterministic")
	}
	if h1 == HashBlob("a.txt", []byte("other bytes")) {
		t.Error("different content produced the same digest")
	}
}

func TestHashCommitIdentity(t *testing.T) {
	ts := "Thu Jan 01 00:00:00 1970 +0000"
	if HashCommit("initial commit", ts) != HashCommit("initial commit", ts) {
		t.Error("HashCommit not deterministic")
	}
	if HashCommit("a", ts) == HashCommit("b", ts) {
		t.Error("different messages produced the same digest")
	}
	// Message and timestamp boundaries must not be ambiguous.
	if HashCommit("ab", "c") == HashCommit("a", "bc") {
		t.Error("message/timestamp boundary is ambiguous")
	}
}

func TestHashIsFull(t *testing.T) {
	full := HashBytes([]byte("x"))
	if !full.IsFull() {
		t.Errorf("IsFull(%q) = false, want true", full)
	}
	for _, h := range []Hash{"", "abc", Hash(string(full[:63]) + "Z"), Hash(string(full) + "0")} {
		if h.IsFull() {
			t.Errorf("IsFull(%q) = true, want false", h)
		}
	}
	if got := full.Short(7); got != string(full[:7]) {
		t.Errorf("Short(7) = %q", got)
	}
	if got := Hash("abc").Short(7); got != "abc" {
		t.Errorf("Short of short hash = %q, want abc", got)
	}
}

func tempStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, opts...)
}

func TestStoreWriteReadBlob(t *testing.T) {
	for _, compress := range []bool{true, false} {
		s := tempStore(t, WithCompression(compress))
		orig := &Blob{Path: "dir/file.txt", Data: []byte("blob content\n\nwith blank lines")}
		h, err := s.WriteBlob(NamespaceBlobs, orig)
		if err != nil {
			t.Fatalf("WriteBlob(compress=%v): %v", compress, err)
		}
		if h != HashBlob(orig.Path, orig.Data) {
			t.Errorf("WriteBlob hash = %s, want %s", h, HashBlob(orig.Path, orig.Data))
		}
		got, err := s.ReadBlob(NamespaceBlobs, h)
		if err != nil {
			t.Fatalf("ReadBlob(compress=%v): %v", compress, err)
		}
		if got.Path != orig.Path || !bytes.Equal(got.Data, orig.Data) {
			t.Errorf("Blob round-trip: got %q %q, want %q %q", got.Path, got.Data, orig.Path, orig.Data)
		}
	}
}

func TestStoreCompressionInterop(t *testing.T) {
	dir := t.TempDir()
	plain := NewStore(dir, WithCompression(false))
	packed := NewStore(dir, WithCompression(true))

	h1, err := plain.WriteBlob(NamespaceBlobs, &Blob{Path: "a", Data: []byte("plain")})
	if err != nil {
		t.Fatalf("WriteBlob plain: %v", err)
	}
	h2, err := packed.WriteBlob(NamespaceBlobs, &Blob{Path: "b", Data: []byte("packed")})
	if err != nil {
		t.Fatalf("WriteBlob packed: %v", err)
	}
	if _, err := packed.ReadBlob(NamespaceBlobs, h1); err != nil {
		t.Errorf("compressed store reading plain object: %v", err)
	}
	if _, err := plain.ReadBlob(NamespaceBlobs, h2); err != nil {
		t.Errorf("plain store reading compressed object: %v", err)
	}
}

func TestStoreFanoutLayout(t *testing.T) {
	s := tempStore(t)
	h, err := s.WriteBlob(NamespaceStaging, &Blob{Path: "f", Data: []byte("fanout test")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	objPath := filepath.Join(s.root, "objects", "staging", string(h[:2]), string(h[2:]))
	if _, err := os.Stat(objPath); os.IsNotExist(err) {
		t.Errorf("Expected fan-out file at %s", objPath)
	}
}

func TestStoreNamespacesAreSeparate(t *testing.T) {
	s := tempStore(t)
	h, err := s.WriteBlob(NamespaceStaging, &Blob{Path: "f", Data: []byte("staged")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if !s.Has(NamespaceStaging, h) {
		t.Error("Has(staging) = false after write")
	}
	if s.Has(NamespaceBlobs, h) {
		t.Error("Has(blobs) = true for a staged-only snapshot")
	}
	if _, err := s.ReadBlob(NamespaceBlobs, h); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadBlob(blobs) error = %v, want ErrNotFound", err)
	}
}

func TestStoreDuplicateWrite(t *testing.T) {
	s := tempStore(t)
	b := &Blob{Path: "dup", Data: []byte("duplicate")}
	h1, err := s.WriteBlob(NamespaceBlobs, b)
	if err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	h2, err := s.WriteBlob(NamespaceBlobs, b)
	if err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Same content produced different hashes: %q vs %q", h1, h2)
	}
	list, err := s.List(NamespaceBlobs)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List after duplicate write = %v, want one object", list)
	}
}

func TestStoreReadMissing(t *testing.T) {
	s := tempStore(t)
	_, _, err := s.Read(NamespaceBlobs, HashBytes([]byte("missing")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read of missing object error = %v, want ErrNotFound", err)
	}
	_, _, err = s.Read(NamespaceBlobs, Hash("short"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read of malformed hash error = %v, want ErrNotFound", err)
	}
}

func TestStoreKindMismatchIsNotFound(t *testing.T) {
	s := tempStore(t)
	h, err := s.WriteBlob(NamespaceCommits, &Blob{Path: "x", Data: []byte("not a commit")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if _, err := s.ReadCommit(h); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadCommit of blob error = %v, want ErrNotFound", err)
	}
}

func TestStorePromote(t *testing.T) {
	s := tempStore(t)
	h, err := s.WriteBlob(NamespaceStaging, &Blob{Path: "p.txt", Data: []byte("promote me")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if err := s.Promote(h); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if s.Has(NamespaceStaging, h) {
		t.Error("staging copy still present after promote")
	}
	got, err := s.ReadBlob(NamespaceBlobs, h)
	if err != nil {
		t.Fatalf("ReadBlob after promote: %v", err)
	}
	if string(got.Data) != "promote me" {
		t.Errorf("promoted content = %q", got.Data)
	}
	if err := s.Promote(h); err != nil {
		t.Errorf("Promote of already committed digest: %v", err)
	}
}

func TestStoreDeleteRefusesCommittedNamespaces(t *testing.T) {
	s := tempStore(t)
	h, err := s.WriteBlob(NamespaceBlobs, &Blob{Path: "keep", Data: []byte("keep")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if err := s.Delete(NamespaceBlobs, h); err == nil {
		t.Error("Delete(blobs) succeeded, want error")
	}
	if !s.Has(NamespaceBlobs, h) {
		t.Error("committed blob disappeared")
	}
	if err := s.Delete(NamespaceStaging, h); err != nil {
		t.Errorf("Delete of absent staged object: %v", err)
	}
}

func TestStoreWriteReadCommit(t *testing.T) {
	s := tempStore(t)
	orig := &CommitObj{
		Message:     "merge feature\n\nwith body",
		Timestamp:   "Mon Jan 02 15:04:05 2006 -0700",
		Parent:      HashBytes([]byte("p1")),
		MergeParent: HashBytes([]byte("p2")),
		Branch:      "master",
		Files: map[string]Hash{
			"a.txt":          HashBlob("a.txt", []byte("a")),
			"dir/b file.txt": HashBlob("dir/b file.txt", []byte("b")),
		},
	}
	h, err := s.WriteCommit(orig)
	if err != nil {
		t.Fatalf("WriteCommit: %v", err)
	}
	if h != HashCommit(orig.Message, orig.Timestamp) {
		t.Errorf("WriteCommit hash = %s", h)
	}
	got, err := s.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if got.Message != orig.Message || got.Timestamp != orig.Timestamp ||
		got.Parent != orig.Parent || got.MergeParent != orig.MergeParent || got.Branch != orig.Branch {
		t.Errorf("commit header round-trip mismatch: %+v", got)
	}
	if len(got.Files) != len(orig.Files) {
		t.Fatalf("Files length: got %d, want %d", len(got.Files), len(orig.Files))
	}
	for p, bh := range orig.Files {
		if got.Files[p] != bh {
			t.Errorf("Files[%q] = %s, want %s", p, got.Files[p], bh)
		}
	}
}
