// Package config loads and validates the .wslsync configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the parsed .wslsync file. WindowsBase is the source tree (a
// Windows filesystem mounted into WSL2, e.g. /mnt/c/Users/me), WSL2Base
// the destination tree, and Files the ordered list of relative entries to
// sync. Order matters: entries are copied in the order listed.
type Config struct {
	WindowsBase string   `toml:"windows_base"`
	WSL2Base    string   `toml:"wsl2_base"`
	Files       []string `toml:"files"`
}

// DefaultPath returns the default config file location: ~/.wslsync.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wslsync")
}

// Load reads and decodes the config file at path. Unlike optional tool
// configs, the sync file is required: a missing file is an error.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the shape of the configuration. Existence of the base
// directories is deliberately not checked here; that belongs to the
// engine's validation phase, which runs against the live filesystem.
func (c Config) Validate() error {
	if c.WindowsBase == "" {
		return errors.New("windows_base is required")
	}
	if c.WSL2Base == "" {
		return errors.New("wsl2_base is required")
	}
	if c.WindowsBase == "." || c.WSL2Base == "." {
		return errors.New("base paths must not be \".\"")
	}
	if len(c.Files) == 0 {
		return errors.New("files list cannot be empty")
	}

	seen := make(map[string]struct{}, len(c.Files))
	for _, entry := range c.Files {
		if entry == "" {
			return errors.New("files entries must not be empty")
		}
		if _, dup := seen[entry]; dup {
			return fmt.Errorf("duplicate files entry: %q", entry)
		}
		seen[entry] = struct{}{}
	}
	return nil
}
