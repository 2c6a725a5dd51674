// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/modsleuth/modsleuth/internal/issue"
	"github.com/modsleuth/modsleuth/pkg/types"

	"github.com/spf13/cobra"
)

// explainCmd documents the detection rules through the issue registry.
var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a detection rule",
	Long: `Explain what a detection rule flags and how to fix the mod.

Without arguments, lists every rule code with a one-line summary. With a
code argument, renders the full documentation for that rule.

Examples:
  modsleuth explain                     List all rule codes
  modsleuth explain unreplaced-version  Explain one rule in detail`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var codes []string
		for _, iss := range issue.Values() {
			codes = append(codes, iss.Code().String())
		}
		return codes, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()

	if len(args) == 0 {
		listRuleCodes(cmd)
		return nil
	}

	code, ok := issue.ParseCode(args[0])
	if !ok {
		cmd.SilenceUsage = true
		return &ExitError{
			Code: types.ExitUsage,
			Err: issue.NewErrorContext().
				WithOperation("look up rule code").
				WithResource(args[0]).
				WithSuggestion("Valid codes: " + strings.Join(allRuleCodes(), ", ")).
				BuildError(),
		}
	}

	rendered, err := issue.Get(code).Render("dark")
	if err != nil {
		return fmt.Errorf("render documentation for %s: %w", code, err)
	}

	fmt.Fprint(stdout, rendered)
	return nil
}

// listRuleCodes prints the code/summary table shown by a bare explain.
func listRuleCodes(cmd *cobra.Command) {
	stdout := cmd.OutOrStdout()

	fmt.Fprintln(stdout, checkTitleStyle.Render("Detection Rules"))
	for _, iss := range issue.Values() {
		fmt.Fprintf(stdout, "  %s  %s\n",
			explainCodeStyle.Render(fmt.Sprintf("%-20s", iss.Code().String())),
			iss.Summary(),
		)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Run 'modsleuth explain <code>' for details\n", checkInfoIcon)
}

func allRuleCodes() []string {
	var codes []string
	for _, iss := range issue.Values() {
		codes = append(codes, iss.Code().String())
	}
	return codes
}
