package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsl-tools/wslsync/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".wslsync")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
windows_base = "/mnt/c/Users/me"
wsl2_base = "/home/me/sync"

files = [
  ".gitconfig",
  "projects/tool",
]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/c/Users/me", cfg.WindowsBase)
	assert.Equal(t, "/home/me/sync", cfg.WSL2Base)
	assert.Equal(t, []string{".gitconfig", "projects/tool"}, cfg.Files)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "files = [[[")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		WindowsBase: "/mnt/c/Users/me",
		WSL2Base:    "/home/me/sync",
		Files:       []string{"a.txt"},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing windows_base", func(c *config.Config) { c.WindowsBase = "" }},
		{"missing wsl2_base", func(c *config.Config) { c.WSL2Base = "" }},
		{"dot base", func(c *config.Config) { c.WindowsBase = "." }},
		{"empty files", func(c *config.Config) { c.Files = nil }},
		{"empty entry", func(c *config.Config) { c.Files = []string{""} }},
		{"duplicate entry", func(c *config.Config) { c.Files = []string{"a", "a"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Files = append([]string(nil), valid.Files...)
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, "/home/someone/.wslsync", config.DefaultPath())
}
