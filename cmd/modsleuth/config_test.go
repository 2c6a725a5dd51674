// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modsleuth/modsleuth/internal/config"
)

// Config command tests are not parallel: they share the package-level
// config cache and its directory override.

func TestNewConfigCommand_Subcommands(t *testing.T) {
	cfgCmd := newConfigCommand()

	wantSubs := []string{"show", "init", "path", "set", "dump"}
	for _, name := range wantSubs {
		found := false
		for _, sub := range cfgCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("config command is missing subcommand %q", name)
		}
	}
}

func TestSetConfigValue_RoundTrip(t *testing.T) {
	isolateConfig(t)
	ctx := context.Background()

	if err := setConfigValue(ctx, "mods.dir", "/srv/mods"); err != nil {
		t.Fatalf("setConfigValue() returned error: %v", err)
	}

	cfg, err := loadConfigForCommand(ctx)
	if err != nil {
		t.Fatalf("loadConfigForCommand() after save returned error: %v", err)
	}
	if got := string(cfg.Mods.Dir); got != "/srv/mods" {
		t.Errorf("Mods.Dir = %q, want %q", got, "/srv/mods")
	}
}

func TestSetConfigValue_BoolKeys(t *testing.T) {
	isolateConfig(t)
	ctx := context.Background()

	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"no", false},
	}

	for _, tt := range tests {
		if err := setConfigValue(ctx, "scan.classes", tt.value); err != nil {
			t.Fatalf("setConfigValue(scan.classes, %q) returned error: %v", tt.value, err)
		}
		cfg, err := loadConfigForCommand(ctx)
		if err != nil {
			t.Fatalf("loadConfigForCommand() returned error: %v", err)
		}
		if cfg.Scan.Classes != tt.want {
			t.Errorf("Scan.Classes after set %q = %v, want %v", tt.value, cfg.Scan.Classes, tt.want)
		}
	}
}

func TestSetConfigValue_UnknownKey(t *testing.T) {
	isolateConfig(t)

	err := setConfigValue(context.Background(), "mods.color", "purple")
	if err == nil {
		t.Fatal("setConfigValue() should reject unknown keys")
	}
	if !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("error = %q, want it to name the unknown key problem", err)
	}
	if !strings.Contains(err.Error(), "mods.dir") {
		t.Errorf("error = %q, want it to list the valid keys", err)
	}
}

func TestSetConfigValue_InvalidValue(t *testing.T) {
	isolateConfig(t)

	err := setConfigValue(context.Background(), "mods.dir", "")
	if err == nil {
		t.Fatal("setConfigValue() should reject an empty mods.dir")
	}
	if !strings.Contains(err.Error(), "invalid mods.dir") {
		t.Errorf("error = %q, want an invalid mods.dir message", err)
	}
}

func TestInitConfigFile(t *testing.T) {
	isolateConfig(t)

	if err := initConfigFile(); err != nil {
		t.Fatalf("initConfigFile() returned error: %v", err)
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if !fileExistsCheck(cfgPath) {
		t.Fatalf("initConfigFile() did not create %s", cfgPath)
	}

	// Re-running must not clobber an existing file.
	if err := os.WriteFile(cfgPath, []byte("// edited"), 0o644); err != nil {
		t.Fatalf("failed to edit config file: %v", err)
	}
	if err := initConfigFile(); err != nil {
		t.Fatalf("initConfigFile() on existing file returned error: %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if string(data) != "// edited" {
		t.Error("initConfigFile() overwrote an existing config file")
	}
}

func TestFileExistsCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if !fileExistsCheck(file) {
		t.Error("fileExistsCheck() = false for an existing file")
	}
	if fileExistsCheck(dir) {
		t.Error("fileExistsCheck() = true for a directory")
	}
	if fileExistsCheck(filepath.Join(dir, "absent.txt")) {
		t.Error("fileExistsCheck() = true for a missing path")
	}
}
