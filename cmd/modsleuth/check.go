// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modsleuth/modsleuth/internal/classscan"
	"github.com/modsleuth/modsleuth/internal/config"
	"github.com/modsleuth/modsleuth/internal/detect"
	"github.com/modsleuth/modsleuth/internal/issue"
	"github.com/modsleuth/modsleuth/internal/loader"
	"github.com/modsleuth/modsleuth/internal/report"
	"github.com/modsleuth/modsleuth/pkg/types"

	"github.com/spf13/cobra"
)

// checkCmd inspects a mods directory and reports every known defect.
var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Inspect installed mods for known packaging defects",
	Long: `Inspect every mod in a directory for known packaging defects.

Without arguments, checks the mods directory from the configuration
(default: ./mods). With a directory argument, checks that directory
instead.

Each mod's metadata is checked for an unreplaced version placeholder,
an outdated schema tier, and current-tier format deviations; each mod's
package root is checked for a refmap left under the default
'build-refmap.json' name. When the class scan is enabled in the
configuration, class files from the mod archives and any extra
classpath roots are scanned for menu subtypes with colliding names.

Findings are grouped per mod and printed as one report. The exit code
is 0 when the directory is clean, 1 when defects were found, and 2 when
the check could not run at all.

Examples:
  modsleuth check                 Check the configured mods directory
  modsleuth check ./server/mods   Check a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg := config.Get()

	dir := string(cfg.Mods.Dir)
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		dir = string(config.DefaultConfig().Mods.Dir)
	}

	if err := checkModsDir(dir); err != nil {
		cmd.SilenceUsage = true
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	fmt.Fprintln(stdout, checkTitleStyle.Render("Mod Check"))
	fmt.Fprintf(stdout, "%s Path: %s\n", checkInfoIcon, checkPathStyle.Render(displayPath(dir)))
	if verbose {
		fmt.Fprintln(stdout, VerboseStyle.Render("  "+scanSummary(cfg.Scan)))
	}
	fmt.Fprintln(stdout)

	host := loader.NewDirHost(dir)
	defer func() {
		if err := host.Close(); err != nil {
			slog.Warn("closing mod archives", "error", err)
		}
	}()

	var scanner detect.SubtypeScanner
	if cfg.Scan.Classes {
		scanner = classscan.New(host, cfg.Scan.RootPaths(), string(cfg.Scan.Mappings))
		slog.Debug("class scan enabled", "roots", len(cfg.Scan.Roots), "mappings", string(cfg.Scan.Mappings))
	}

	agg, err := detect.Detect(cmd.Context(), detect.Options{Host: host, Scanner: scanner})
	if err != nil {
		cmd.SilenceUsage = true
		return &ExitError{
			Code: types.ExitUsage,
			Err: issue.NewErrorContext().
				WithOperation("inspect installed mods").
				WithResource(dir).
				WithSuggestion("Check that the directory is readable").
				Wrap(err).
				BuildError(),
		}
	}

	if agg.Empty() {
		fmt.Fprintf(stdout, "%s No bad mods found\n", checkSuccessIcon)
		slog.Debug("check passed", "dir", dir)
		return nil
	}

	// The report goes out verbatim: its layout is stable for a given finding
	// set, so launcher logs and CI output stay diffable.
	badErr := &report.BadModsError{Aggregate: agg}
	fmt.Fprintln(stderr, badErr.Error())
	fmt.Fprintln(stderr)
	fmt.Fprintf(stderr, "%s %d finding(s) across %d source(s)\n", checkErrorIcon, agg.Count(), len(agg.Sources()))

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: types.ExitFindings}
}

// checkModsDir verifies the target is an existing directory before any
// evaluation starts, so path mistakes fail fast with remediation hints
// instead of surfacing as an empty scan.
func checkModsDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("open mods directory").
			WithResource(dir).
			WithSuggestion("Pass the directory explicitly: modsleuth check <dir>").
			WithSuggestion("Or set mods.dir in the configuration: modsleuth config set mods.dir <dir>").
			Wrap(err).
			BuildError()
	}
	if !info.IsDir() {
		return issue.NewErrorContext().
			WithOperation("open mods directory").
			WithResource(dir).
			WithSuggestion("The path exists but is not a directory").
			BuildError()
	}
	return nil
}

// displayPath shows dir as an absolute path when it resolves, falling back
// to the raw argument.
func displayPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// scanSummary describes the class-scan settings for the verbose header.
func scanSummary(scan config.ScanConfig) string {
	if !scan.Classes {
		return "Class scan: off"
	}
	s := fmt.Sprintf("Class scan: on, %d extra root(s)", len(scan.Roots))
	if scan.Mappings != "" {
		s += ", mappings " + string(scan.Mappings)
	}
	return s
}
