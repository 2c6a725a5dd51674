// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/modsleuth/modsleuth/internal/config"
	"github.com/modsleuth/modsleuth/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modsleuth config` command tree.
// Subcommands that read configuration go through a fresh Provider so they
// always reflect the on-disk state, not the cached global.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modsleuth configuration",
		Long: `Manage modsleuth configuration.

Configuration is stored in:
  - Linux: ~/.config/modsleuth/config.cue
  - macOS: ~/Library/Application Support/modsleuth/config.cue
  - Windows: %APPDATA%\modsleuth\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCommand(cmd.Context())
			if err != nil {
				return err
			}

			cueContent := config.GenerateCUE(cfg)
			fmt.Print(cueContent)
			return nil
		},
	})

	return cfgCmd
}

// loadConfigForCommand reads the configuration through a Provider, honoring
// the --config flag when set.
func loadConfigForCommand(ctx context.Context) (*config.Config, error) {
	return config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(cfgFile),
	})
}

func showConfig(ctx context.Context) error {
	cfg, err := loadConfigForCommand(ctx)
	if err != nil {
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	// Derive config file path from the standard config directory since the provider
	// does not cache resolved paths; each call derives from the standard config directory.
	cfgPath := cfgFile
	if cfgPath == "" {
		if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
			cfgPath = cfgDir + "/" + config.ConfigFileName + "." + config.ConfigFileExt
		}
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	// Show values
	fmt.Printf("%s:\n", keyStyle.Render("mods"))
	fmt.Printf("  dir: %s\n", valueStyle.Render(string(cfg.Mods.Dir)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("scan"))
	fmt.Printf("  classes: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Scan.Classes)))
	if cfg.Scan.Mappings == "" {
		fmt.Printf("  mappings: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Printf("  mappings: %s\n", valueStyle.Render(string(cfg.Scan.Mappings)))
	}
	if len(cfg.Scan.Roots) == 0 {
		fmt.Printf("  roots: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Printf("  roots:\n")
		for _, root := range cfg.Scan.Roots {
			fmt.Printf("    - %s\n", valueStyle.Render(string(root)))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s/%s.%s\n",
		SuccessStyle.Render("✓"), cfgDir, config.ConfigFileName, config.ConfigFileExt)

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/%s.%s\n", cfgDir, config.ConfigFileName, config.ConfigFileExt)

	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	cfg, err := loadConfigForCommand(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "mods.dir":
		dir := config.ModsDirPath(value)
		if valid, errs := dir.IsValid(); !valid {
			return fmt.Errorf("invalid mods.dir: %w", errs[0])
		}
		cfg.Mods.Dir = dir

	case "scan.classes":
		cfg.Scan.Classes = value == "true" || value == "1"

	case "scan.mappings":
		mappings := config.MappingsFilePath(value)
		if valid, errs := mappings.IsValid(); !valid {
			return fmt.Errorf("invalid scan.mappings: %w", errs[0])
		}
		cfg.Scan.Mappings = mappings

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: mods.dir, scan.classes, scan.mappings, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
