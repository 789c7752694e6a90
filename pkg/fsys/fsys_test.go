package fsys

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "a.txt", want: "a.txt"},
		{in: "./dir//b.txt", want: "dir/b.txt"},
		{in: "dir\\c.txt", want: "dir/c.txt"},
		{in: "dir/../d.txt", want: "d.txt"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../escape", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Clean(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Clean(%q) error = %v, want ErrInvalidPath", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Clean(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func skipHidden(rel string, isDir bool) bool {
	return strings.HasPrefix(filepath.Base(rel), ".")
}

// exerciseFS runs the same behavioural checks against any FS.
func exerciseFS(t *testing.T, f FS) {
	t.Helper()

	if err := f.WriteFile("a.txt", []byte("a")); err != nil {
		t.Fatalf("WriteFile a.txt: %v", err)
	}
	if err := f.WriteFile("nested/deep/b.txt", []byte("b")); err != nil {
		t.Fatalf("WriteFile nested: %v", err)
	}
	if err := f.WriteFile(".hidden/c.txt", []byte("c")); err != nil {
		t.Fatalf("WriteFile hidden: %v", err)
	}

	got, err := f.ReadFile("nested/deep/b.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "b" {
		t.Errorf("ReadFile = %q, want b", got)
	}
	if _, err := f.ReadFile("missing.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing error = %v, want fs.ErrNotExist", err)
	}

	if !f.Exists("a.txt") || f.Exists("missing.txt") {
		t.Error("Exists returned wrong answer")
	}

	list, err := f.List(skipHidden)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.txt", "nested/deep/b.txt"}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("List = %v, want %v", list, want)
	}

	if err := f.Remove("nested/deep/b.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f.Exists("nested/deep/b.txt") {
		t.Error("file still exists after Remove")
	}
	if err := f.Remove("nested/deep/b.txt"); err != nil {
		t.Errorf("Remove of missing file: %v", err)
	}
	if _, err := f.ReadFile("../outside"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("ReadFile outside root error = %v, want ErrInvalidPath", err)
	}
}

func TestMemFS(t *testing.T) {
	exerciseFS(t, NewMemFS())
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	exerciseFS(t, NewOSFS(dir))

	if _, err := os.Stat(filepath.Join(dir, "nested")); !os.IsNotExist(err) {
		t.Errorf("empty parent directories not pruned: %v", err)
	}
}
