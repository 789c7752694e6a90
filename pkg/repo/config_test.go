package repo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigManager_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ignore.Patterns = []string{"*.log", "build/"}

	var buf bytes.Buffer
	m := &ConfigManager{}
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.RepoID != cfg.RepoID || got.DefaultBranch != "master" {
		t.Errorf("got %+v", got)
	}
	if strings.Join(got.Ignore.Patterns, ",") != "*.log,build/" {
		t.Errorf("ignore patterns = %v", got.Ignore.Patterns)
	}
}

func TestConfigManager_Defaults(t *testing.T) {
	got, err := (&ConfigManager{}).Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.DefaultBranch != "master" || got.Objects.Compression != "zstd" || got.Catalog.Type != "file" || got.Log.Level != "info" {
		t.Errorf("defaults = %+v", got)
	}
}

func TestConfigManager_Invalid(t *testing.T) {
	tests := map[string]string{
		"compression": "[objects]\ncompression = \"lz4\"\n",
		"catalog":     "[catalog]\ntype = \"postgres\"\n",
		"log level":   "[log]\nlevel = \"loud\"\n",
		"repo id":     "repo_id = \"not-a-uuid\"\n",
		"branch":      "default_branch = \"a/b\"\n",
		"dash branch": "default_branch = \"-x\"\n",
		"temp branch": "default_branch = \".tmp-a\"\n",
		"memory":      "[catalog]\ntype = \"memory\"\n",
		"syntax":      "repo_id = \n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := (&ConfigManager{}).Read(strings.NewReader(doc)); err == nil {
				t.Errorf("Read(%q) succeeded, want error", doc)
			}
		})
	}
}

func TestInit_RejectsConfigBeforeWriting(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"memory catalog": func(c *Config) { c.Catalog.Type = "memory" },
		"dash branch":    func(c *Config) { c.DefaultBranch = "-x" },
		"temp branch":    func(c *Config) { c.DefaultBranch = ".tmp-a" },
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := DefaultConfig()
			mutate(cfg)
			if r, err := Init(dir, cfg); err == nil {
				r.Close()
				t.Fatal("Init succeeded, want config error")
			}
			if _, err := os.Stat(filepath.Join(dir, DirName)); !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("%s left behind after failed Init: %v", DirName, err)
			}

			r, err := Init(dir, DefaultConfig())
			if err != nil {
				t.Fatalf("Init after failure: %v", err)
			}
			r.Close()
		})
	}
}
