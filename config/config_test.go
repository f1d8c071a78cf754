package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 65536, cfg.Parser.ModuleContextLimit)
	assert.True(t, cfg.Parser.AcceptLegacyStmts)

	assert.Equal(t, 2, cfg.Printer.IndentWidth)
	assert.True(t, cfg.Printer.AlwaysParens)

	assert.True(t, cfg.Diagnostics.ShowSourceContext)
	assert.Equal(t, 0, cfg.Diagnostics.ContextLines)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	require.NotEmpty(t, path)
	assert.Equal(t, "config.toml", filepath.Base(path))

	switch runtime.GOOS {
	case "windows":
		if path != "config.toml" {
			assert.True(t, filepath.IsAbs(path))
		}
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if path != "config.toml" {
			assert.Equal(t, "firrtl-go", filepath.Base(dir))
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Parser.ModuleContextLimit = 256
	cfg.Parser.AcceptLegacyStmts = false
	cfg.Printer.IndentWidth = 4
	cfg.Diagnostics.ContextLines = 3

	require.NoError(t, cfg.SaveTo(configPath))
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr)

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, 256, loaded.Parser.ModuleContextLimit)
	assert.False(t, loaded.Parser.AcceptLegacyStmts)
	assert.Equal(t, 4, loaded.Printer.IndentWidth)
	assert.Equal(t, 3, loaded.Diagnostics.ContextLines)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, 65536, cfg.Parser.ModuleContextLimit)
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[parser]
module_context_limit = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	assert.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))

	_, err := os.Stat(configPath)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Dir(configPath))
	require.NoError(t, err)
}
