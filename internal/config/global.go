// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/modsleuth/modsleuth/pkg/types"
)

var (
	// globalConfig caches the last successfully loaded configuration.
	globalConfig *Config
	// configPath records which file the cached configuration came from.
	// Empty when the configuration is built from defaults only.
	configPath string
	// errLastLoad stores the error from the last failed load so callers
	// that fall back to defaults can still surface what went wrong.
	errLastLoad error

	// configFilePathOverride forces loading from a specific config file (--config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the cached configuration, loading it from disk on first use.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(configFilePathOverride),
		ConfigDirPath:  types.FilesystemPath(configDirOverride),
	})
	if err != nil {
		errLastLoad = err
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	errLastLoad = nil

	return globalConfig, nil
}

// Get returns the loaded configuration, falling back to defaults when
// loading fails. The load error is retained for LastLoadError so the CLI
// can warn without aborting.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent failed load, or nil
// when the last load succeeded.
func LastLoadError() error {
	return errLastLoad
}

// ConfigFilePath returns the path of the loaded config file, or "" when
// running on defaults.
func ConfigFilePath() string {
	return configPath
}

// Reset clears the cached configuration and all overrides.
// Call from test cleanup to restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
	configFilePathOverride = ""
	configDirOverride = ""
}

// ResetCache clears the cached configuration while preserving overrides.
func ResetCache() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}

// SetConfigFilePathOverride forces subsequent loads to read the given file.
// The cached configuration is cleared so the override takes effect immediately.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	ResetCache()
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
