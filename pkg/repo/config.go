package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/odvcencio/gitlet/pkg/catalog"
)

const defaultBranch = "master"

// Config stores repository-local settings in .gitlet/config.toml.
type Config struct {
	RepoID        string         `toml:"repo_id"`
	DefaultBranch string         `toml:"default_branch"`
	Objects       ObjectsConfig  `toml:"objects"`
	Catalog       catalog.Config `toml:"catalog"`
	Log           LogConfig      `toml:"log"`
	Ignore        IgnoreConfig   `toml:"ignore"`
}

// ObjectsConfig controls how objects are written to disk.
type ObjectsConfig struct {
	Compression string `toml:"compression"` // "zstd" (default) or "none"
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info (default), warn or error
}

// IgnoreConfig holds extra ignore patterns applied on top of .gitletignore.
type IgnoreConfig struct {
	Patterns []string `toml:"patterns"`
}

// DefaultConfig returns a Config with a fresh repository id and the
// default settings.
func DefaultConfig() *Config {
	return &Config{
		RepoID:        uuid.NewString(),
		DefaultBranch: defaultBranch,
		Objects:       ObjectsConfig{Compression: "zstd"},
		Catalog:       catalog.Config{Type: "file"},
		Log:           LogConfig{Level: "info"},
	}
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.DefaultBranch == "" {
		c.DefaultBranch = defaultBranch
	}
	if c.Objects.Compression == "" {
		c.Objects.Compression = "zstd"
	}
	if c.Catalog.Type == "" {
		c.Catalog.Type = "file"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.RepoID != "" {
		if _, err := uuid.Parse(c.RepoID); err != nil {
			return fmt.Errorf("repo_id %q: %w", c.RepoID, err)
		}
	}
	if !validBranchName(c.DefaultBranch) {
		return fmt.Errorf("default_branch %q is not a valid branch name", c.DefaultBranch)
	}
	switch c.Objects.Compression {
	case "zstd", "none":
	default:
		return fmt.Errorf("unknown objects.compression: %s", c.Objects.Compression)
	}
	switch c.Catalog.Type {
	case "file", "sqlite":
	case "memory":
		// Only usable for a process-local catalog; a repository would lose
		// its commit table on exit.
		return fmt.Errorf("catalog.type %q does not persist across runs", c.Catalog.Type)
	default:
		return fmt.Errorf("unknown catalog.type: %s", c.Catalog.Type)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("unknown log.level: %s", c.Log.Level)
	}
	return level, nil
}

// ConfigManager reads and writes Config values as TOML.
type ConfigManager struct{}

// Read decodes and validates a Config. Unset fields take their defaults.
func (m *ConfigManager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Write encodes cfg.
func (m *ConfigManager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func configPath(gitletDir string) string {
	return filepath.Join(gitletDir, "config.toml")
}

// readConfig loads .gitlet/config.toml. A missing file yields defaults
// without a repository id.
func readConfig(gitletDir string) (*Config, error) {
	data, err := os.ReadFile(configPath(gitletDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := (&ConfigManager{}).Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath(gitletDir), err)
	}
	return cfg, nil
}

// writeConfig atomically writes .gitlet/config.toml.
func writeConfig(gitletDir string, cfg *Config) error {
	var buf bytes.Buffer
	if err := (&ConfigManager{}).Write(&buf, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return writeFileAtomic(configPath(gitletDir), buf.Bytes())
}
