package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, 200, cfg.History.MaxEntries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.History.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		// A nonexistent explicit path is a read error; defaults still
		// come from Default().
		cfg = Default()
	}
	assert.Equal(t, "origin", cfg.Git.Remote)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "git:\n  remote: upstream\nhistory:\n  max_entries: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Git.Remote)
	assert.Equal(t, 42, cfg.History.MaxEntries)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TIDYGIT_REMOTE", "fork")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Git.Remote)
}
