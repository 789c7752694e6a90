package repo

import (
	"testing"

	"github.com/odvcencio/gitlet/pkg/fsys"
)

func TestIgnoreChecker(t *testing.T) {
	work := fsys.NewMemFS()
	ignoreFile := "# comment\n\n*.log\nbuild/\n!keep.log\ndocs/*.tmp\n**/cache/**\n/rooted.txt\n"
	if err := work.WriteFile(IgnoreFile, []byte(ignoreFile)); err != nil {
		t.Fatal(err)
	}
	ic := NewIgnoreChecker(work, []string{"secret.env"})

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{".gitlet", true, true},
		{".gitlet/HEAD", false, true},
		{"debug.log", false, true},
		{"sub/trace.log", false, true},
		{"keep.log", false, false},
		{"build", true, true},
		{"build", false, false},
		{"build/out.bin", false, true},
		{"docs/a.tmp", false, true},
		{"docs/deep/a.tmp", false, false},
		{"x/cache/y", false, true},
		{"rooted.txt", false, true},
		{"secret.env", false, true},
		{"main.txt", false, false},
		{IgnoreFile, false, false},
	}
	for _, tc := range tests {
		if got := ic.IsIgnored(tc.path, tc.isDir); got != tc.want {
			t.Errorf("IsIgnored(%q, dir=%v) = %v, want %v", tc.path, tc.isDir, got, tc.want)
		}
	}
}

func TestIgnoreChecker_SkipsDuringListing(t *testing.T) {
	work := fsys.NewMemFS()
	for _, p := range []string{"a.txt", "build/x.o", "b.log", ".gitlet/HEAD"} {
		if err := work.WriteFile(p, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	ic := NewIgnoreChecker(work, []string{"build/", "*.log"})
	files, err := work.List(ic.Skip)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "a.txt" {
		t.Errorf("List = %v, want [a.txt]", files)
	}
}
