package repo

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCreateBranch(t *testing.T) {
	r, _ := setupRepo(t)
	if err := r.CreateBranch("dev"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	names, current, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"dev", "master"}) || current != "master" {
		t.Errorf("ListBranches = %v, %q", names, current)
	}

	if err := r.CreateBranch("dev"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate error = %v, want ErrAlreadyExists", err)
	}
	for _, bad := range []string{"", "a/b", "has space", "..", "-x"} {
		if err := r.CreateBranch(bad); err == nil {
			t.Errorf("CreateBranch(%q) succeeded", bad)
		}
	}
}

func TestCreateBranch_PointsAtHead(t *testing.T) {
	r, dir := setupRepo(t)
	h := commitFile(t, r, dir, "a.txt", "a", "add a")
	if err := r.CreateBranch("dev"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, DirName, "refs", "heads", "dev"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(h)+"\n" {
		t.Errorf("dev ref = %q, want %s", data, h)
	}
}

func TestDeleteBranch(t *testing.T) {
	r, dir := setupRepo(t)
	if err := r.CreateBranch("dev"); err != nil {
		t.Fatal(err)
	}
	if err := r.DeleteBranch("master"); !errors.Is(err, ErrCannotDeleteCurrent) {
		t.Errorf("delete current error = %v", err)
	}
	if err := r.DeleteBranch("nope"); !errors.Is(err, ErrUnknownBranch) {
		t.Errorf("delete unknown error = %v", err)
	}
	if !errors.Is(ErrUnknownBranch, ErrNotFound) {
		t.Error("ErrUnknownBranch is not an ErrNotFound")
	}
	if err := r.DeleteBranch("dev"); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	names, _, _ := r.ListBranches()
	if !reflect.DeepEqual(names, []string{"master"}) {
		t.Errorf("branches after delete = %v", names)
	}
	if _, err := os.Stat(filepath.Join(dir, DirName, "refs", "heads", "dev")); !os.IsNotExist(err) {
		t.Errorf("ref file still present: %v", err)
	}
}
