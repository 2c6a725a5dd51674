// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidModsDirPath is returned when a ModsDirPath value is whitespace-only.
	ErrInvalidModsDirPath = errors.New("invalid mods dir path")
	// ErrInvalidMappingsFilePath is returned when a MappingsFilePath value is whitespace-only.
	ErrInvalidMappingsFilePath = errors.New("invalid mappings file path")
	// ErrInvalidClasspathRoot is the sentinel error wrapped by InvalidClasspathRootError.
	ErrInvalidClasspathRoot = errors.New("invalid classpath root")
	// ErrInvalidModsConfig is the sentinel error wrapped by InvalidModsConfigError.
	ErrInvalidModsConfig = errors.New("invalid mods config")
	// ErrInvalidScanConfig is the sentinel error wrapped by InvalidScanConfigError.
	ErrInvalidScanConfig = errors.New("invalid scan config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ModsDirPath represents the filesystem path of the directory scanned for
	// installed mods. The zero value ("") is valid and means "use the default
	// mods directory". Non-zero values must not be whitespace-only.
	ModsDirPath string

	// InvalidModsDirPathError is returned when a ModsDirPath value is
	// non-empty but whitespace-only.
	InvalidModsDirPathError struct {
		Value ModsDirPath
	}

	// MappingsFilePath represents the filesystem path of a TOML mappings file
	// that translates intermediary class names to their runtime equivalents.
	// The zero value ("") is valid and means "no mappings file". Non-zero
	// values must not be whitespace-only.
	MappingsFilePath string

	// InvalidMappingsFilePathError is returned when a MappingsFilePath value is
	// non-empty but whitespace-only.
	InvalidMappingsFilePathError struct {
		Value MappingsFilePath
	}

	// ClasspathRoot represents a directory or jar archive whose class files are
	// included in the class collision scan alongside the installed mods.
	// A valid root must be non-empty and not whitespace-only.
	ClasspathRoot string

	// InvalidClasspathRootError is returned when a ClasspathRoot value is
	// empty or whitespace-only. It wraps ErrInvalidClasspathRoot for errors.Is().
	InvalidClasspathRootError struct {
		Value ClasspathRoot
	}

	// InvalidModsConfigError is returned when a ModsConfig has invalid fields.
	// It wraps ErrInvalidModsConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidModsConfigError struct {
		FieldErrors []error
	}

	// InvalidScanConfigError is returned when a ScanConfig has invalid fields.
	// It wraps ErrInvalidScanConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidScanConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Mods configures where installed mods are discovered.
		Mods ModsConfig `json:"mods" mapstructure:"mods"`
		// Scan configures the class collision scan.
		Scan ScanConfig `json:"scan" mapstructure:"scan"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ModsConfig configures mod discovery.
	ModsConfig struct {
		// Dir is the directory scanned for installed mods.
		Dir ModsDirPath `json:"dir" mapstructure:"dir"`
	}

	// ScanConfig configures the class collision scan.
	ScanConfig struct {
		// Classes enables scanning class files for container name collisions.
		Classes bool `json:"classes" mapstructure:"classes"`
		// Mappings points to a TOML file translating intermediary class names.
		Mappings MappingsFilePath `json:"mappings" mapstructure:"mappings"`
		// Roots lists extra classpath roots to include in the scan.
		Roots []ClasspathRoot `json:"roots" mapstructure:"roots"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// RootPaths returns the configured classpath roots as plain strings.
func (c ScanConfig) RootPaths() []string {
	paths := make([]string, len(c.Roots))
	for i, root := range c.Roots {
		paths[i] = string(root)
	}
	return paths
}

// IsValid returns whether the ModsConfig has valid fields.
// It delegates to Dir.IsValid().
func (c ModsConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidModsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModsConfigError.
func (e *InvalidModsConfigError) Error() string {
	return fmt.Sprintf("invalid mods config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidModsConfig for errors.Is() compatibility.
func (e *InvalidModsConfigError) Unwrap() error { return ErrInvalidModsConfig }

// IsValid returns whether the ScanConfig has valid fields.
// It delegates to Mappings.IsValid() and each Roots entry's IsValid().
// The Classes bool needs no validation.
func (c ScanConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Mappings.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, root := range c.Roots {
		if valid, fieldErrs := root.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidScanConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidScanConfigError.
func (e *InvalidScanConfigError) Error() string {
	return fmt.Sprintf("invalid scan config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidScanConfig for errors.Is() compatibility.
func (e *InvalidScanConfigError) Unwrap() error { return ErrInvalidScanConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Mods.IsValid() and Scan.IsValid().
// UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Mods.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Scan.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ModsDirPath.
func (p ModsDirPath) String() string { return string(p) }

// IsValid returns whether the ModsDirPath is valid.
// The zero value ("") is valid (means "use the default mods directory").
// Non-zero values must not be whitespace-only.
func (p ModsDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidModsDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModsDirPathError.
func (e *InvalidModsDirPathError) Error() string {
	return fmt.Sprintf("invalid mods dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidModsDirPath for errors.Is() compatibility.
func (e *InvalidModsDirPathError) Unwrap() error { return ErrInvalidModsDirPath }

// String returns the string representation of the MappingsFilePath.
func (p MappingsFilePath) String() string { return string(p) }

// IsValid returns whether the MappingsFilePath is valid.
// The zero value ("") is valid (means "no mappings file").
// Non-zero values must not be whitespace-only.
func (p MappingsFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidMappingsFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMappingsFilePathError.
func (e *InvalidMappingsFilePathError) Error() string {
	return fmt.Sprintf("invalid mappings file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidMappingsFilePath for errors.Is() compatibility.
func (e *InvalidMappingsFilePathError) Unwrap() error { return ErrInvalidMappingsFilePath }

// String returns the string representation of the ClasspathRoot.
func (r ClasspathRoot) String() string { return string(r) }

// IsValid returns whether the ClasspathRoot is valid.
// A valid root must be non-empty and not whitespace-only.
func (r ClasspathRoot) IsValid() (bool, []error) {
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidClasspathRootError{Value: r}}
	}
	return true, nil
}

// Error implements the error interface for InvalidClasspathRootError.
func (e *InvalidClasspathRootError) Error() string {
	return fmt.Sprintf("invalid classpath root %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidClasspathRoot for errors.Is() compatibility.
func (e *InvalidClasspathRootError) Unwrap() error { return ErrInvalidClasspathRoot }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Mods: ModsConfig{
			Dir: "mods",
		},
		Scan: ScanConfig{
			Classes:  false,
			Mappings: "", // Intermediary names are reported as-is when empty
			Roots:    []ClasspathRoot{},
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
