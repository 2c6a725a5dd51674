// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"strings"
)

// Source identifies the entity a finding is attributed to. The set of
// implementations is closed: mods, single classes, and package prefixes.
// Two sources are equal iff their identities are equal.
type Source interface {
	// Identity is the grouping and equality key.
	Identity() string
	// Info is the header line rendered for the source's report block.
	Info() string

	// rank orders source kinds in the rendered report: mods first, then
	// classes, then packages.
	rank() int
}

type (
	// ModSource attributes findings to an installed mod.
	ModSource struct {
		ID      string
		Name    string
		Authors []string
	}

	// ClassSource attributes findings to a single class with a known loader.
	ClassSource struct {
		Name   string
		Loader string
	}

	// PackageSource attributes findings to a dotted package prefix when the
	// owning mod is not known.
	PackageSource struct {
		Prefix string
	}
)

// Identity returns the mod id.
func (s ModSource) Identity() string { return s.ID }

// Info renders "<id> (<name>) by <authors>". Mods that declare no authors
// show the literal "unknown".
func (s ModSource) Info() string {
	authors := "unknown"
	if len(s.Authors) > 0 {
		authors = strings.Join(s.Authors, ", ")
	}
	return fmt.Sprintf("%s (%s) by %s", s.ID, s.Name, authors)
}

func (s ModSource) rank() int { return 0 }

// Identity returns the fully-qualified class name.
func (s ClassSource) Identity() string { return s.Name }

// Info renders "Class <name> loaded by <loader>".
func (s ClassSource) Info() string {
	return fmt.Sprintf("Class %s loaded by %s", s.Name, s.Loader)
}

func (s ClassSource) rank() int { return 1 }

// Identity returns the package prefix.
func (s PackageSource) Identity() string { return s.Prefix }

// Info renders "Package <prefix>".
func (s PackageSource) Info() string {
	return fmt.Sprintf("Package %s", s.Prefix)
}

func (s PackageSource) rank() int { return 2 }

// PackageOf builds a PackageSource from a fully-qualified class name,
// keeping at most the first three dotted segments.
func PackageOf(className string) PackageSource {
	parts := strings.Split(className, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return PackageSource{Prefix: strings.Join(parts, ".")}
}
