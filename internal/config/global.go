// Package config loads btrsnap's global settings.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GlobalConfig holds global btrsnap settings from ~/.btrsnap/config.yaml.
type GlobalConfig struct {
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Debug     DebugConfig     `yaml:"debug"`
}

// SnapshotsConfig holds snapshot lifecycle defaults surfaced as CLI flag
// defaults.
type SnapshotsConfig struct {
	// Keep is the default retention count for delete operations.
	Keep int `yaml:"keep"`
	// Readonly controls whether new snapshots are read-only by default.
	Readonly bool `yaml:"readonly"`
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	// RetentionDays is how many days of debug log files to keep.
	RetentionDays int `yaml:"retention_days"`
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Snapshots: SnapshotsConfig{
			Keep:     5,
			Readonly: true,
		},
		Debug: DebugConfig{
			RetentionDays: 7,
		},
	}
}

// LoadGlobal reads ~/.btrsnap/config.yaml and applies environment overrides.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	configPath := filepath.Join(GlobalConfigDir(), "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		_ = yaml.Unmarshal(data, cfg) // Ignore unmarshal errors, use defaults
	}

	// Apply environment overrides
	if keepStr := os.Getenv("BTRSNAP_KEEP"); keepStr != "" {
		if keep, err := strconv.Atoi(keepStr); err == nil {
			cfg.Snapshots.Keep = keep
		}
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.btrsnap.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".btrsnap")
	}
	return filepath.Join(homeDir, ".btrsnap")
}
