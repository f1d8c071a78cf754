// Package config loads and stores parser/printer behavior settings for
// the firrtl module, the same TOML-backed, struct-tagged shape the
// teacher repository uses for its own emulator configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds parser, printer and diagnostics settings. Of these,
// only Parser.ModuleContextLimit is read by the parser; the other
// fields are loaded and saved but not consulted by the parser or the
// printer.
type Config struct {
	// Parser settings
	Parser struct {
		ModuleContextLimit int  `toml:"module_context_limit"`
		AcceptLegacyStmts  bool `toml:"accept_legacy_statements"`
	} `toml:"parser"`

	// Printer settings
	Printer struct {
		IndentWidth  int  `toml:"indent_width"`
		AlwaysParens bool `toml:"always_parens_reset"`
	} `toml:"printer"`

	// Diagnostics settings
	Diagnostics struct {
		ShowSourceContext bool `toml:"show_source_context"`
		ContextLines      int  `toml:"context_lines"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Parser.ModuleContextLimit = 65536
	cfg.Parser.AcceptLegacyStmts = true

	cfg.Printer.IndentWidth = 2
	cfg.Printer.AlwaysParens = true

	cfg.Diagnostics.ShowSourceContext = true
	cfg.Diagnostics.ContextLines = 0

	return cfg
}

// configDir resolves the platform-specific directory firrtl-go's config
// file lives in, without touching the filesystem.
func configDir() (dir string, ok bool) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "firrtl-go"), true

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		return filepath.Join(homeDir, ".config", "firrtl-go"), true

	default:
		return "", false
	}
}

// GetConfigPath returns the platform-specific config file path, falling
// back to a bare relative path on platforms or environments where a
// home/app-data directory can't be resolved.
func GetConfigPath() string {
	dir, ok := configDir()
	if !ok {
		return "config.toml"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// is not an error: the defaults are returned unchanged, since a reader
// or printer with no config on disk should still run.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	switch _, err := os.Stat(path); {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo encodes the configuration as TOML and writes it to path,
// creating the parent directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	encErr := toml.NewEncoder(f).Encode(c)
	closeErr := f.Close()
	switch {
	case encErr != nil:
		return fmt.Errorf("failed to encode config: %w", encErr)
	case closeErr != nil:
		return fmt.Errorf("failed to close config file: %w", closeErr)
	}
	return nil
}
