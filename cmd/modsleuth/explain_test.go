// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/modsleuth/modsleuth/internal/issue"
	"github.com/modsleuth/modsleuth/pkg/types"
)

func TestRunExplain_ListsAllCodes(t *testing.T) {
	t.Parallel()

	cmd, stdout, _ := newScratchCommand()
	if err := runExplain(cmd, nil); err != nil {
		t.Fatalf("runExplain() without args returned error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Detection Rules") {
		t.Errorf("listing missing title, got:\n%s", out)
	}
	for _, iss := range issue.Values() {
		if !strings.Contains(out, iss.Code().String()) {
			t.Errorf("listing missing code %q, got:\n%s", iss.Code().String(), out)
		}
		if !strings.Contains(out, iss.Summary()) {
			t.Errorf("listing missing summary for %q, got:\n%s", iss.Code().String(), out)
		}
	}
	if !strings.Contains(out, "modsleuth explain <code>") {
		t.Errorf("listing missing usage hint, got:\n%s", out)
	}
}

func TestRunExplain_RendersKnownCode(t *testing.T) {
	t.Parallel()

	cmd, stdout, _ := newScratchCommand()
	if err := runExplain(cmd, []string{"unnamed-refmap"}); err != nil {
		t.Fatalf("runExplain() for a known code returned error: %v", err)
	}

	out := stdout.String()
	if out == "" {
		t.Fatal("rendered documentation should not be empty")
	}
	// Word wrap may break at hyphens, so match the unbreakable tail.
	if !strings.Contains(out, "refmap") {
		t.Errorf("rendered documentation missing rule content, got:\n%s", out)
	}
}

func TestRunExplain_AllCodesRender(t *testing.T) {
	t.Parallel()

	for _, iss := range issue.Values() {
		code := iss.Code().String()
		t.Run(code, func(t *testing.T) {
			t.Parallel()
			cmd, stdout, _ := newScratchCommand()
			if err := runExplain(cmd, []string{code}); err != nil {
				t.Fatalf("runExplain(%q) returned error: %v", code, err)
			}
			if strings.TrimSpace(stdout.String()) == "" {
				t.Errorf("runExplain(%q) produced no output", code)
			}
		})
	}
}

func TestRunExplain_UnknownCode(t *testing.T) {
	t.Parallel()

	cmd, _, _ := newScratchCommand()
	err := runExplain(cmd, []string{"bogus-code"})
	if err == nil {
		t.Fatal("runExplain() should fail for an unknown code")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != types.ExitUsage {
		t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitUsage)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should carry an *issue.ActionableError, got: %v", err)
	}
	found := false
	for _, s := range ae.Suggestions {
		if strings.Contains(s, "Valid codes:") && strings.Contains(s, "unreplaced-version") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions should list the valid codes, got: %v", ae.Suggestions)
	}
}

func TestAllRuleCodes(t *testing.T) {
	t.Parallel()

	codes := allRuleCodes()
	if len(codes) != len(issue.Values()) {
		t.Fatalf("allRuleCodes() returned %d codes, want %d", len(codes), len(issue.Values()))
	}
	for _, code := range codes {
		if _, ok := issue.ParseCode(code); !ok {
			t.Errorf("allRuleCodes() returned unparseable code %q", code)
		}
	}
}
