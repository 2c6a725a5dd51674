// SPDX-License-Identifier: MPL-2.0

// Package report collects defect findings per offending source and renders
// them as a deterministic textual tree.
package report

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Aggregate is an append-only multimap from Source to finding
	// descriptions. Keys are unique by Source identity; the finding order
	// per source is insertion order. The zero value is not usable, call
	// NewAggregate.
	Aggregate struct {
		entries map[string]*entry
	}

	entry struct {
		src      Source
		findings []string
	}
)

// NewAggregate returns an empty Aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{entries: map[string]*entry{}}
}

// Add appends a finding under the source's identity. The first source seen
// for an identity supplies the block header; later calls with an equal
// identity append to the same ordered list and never create a second key.
func (a *Aggregate) Add(src Source, finding string) {
	e, ok := a.entries[src.Identity()]
	if !ok {
		e = &entry{src: src}
		a.entries[src.Identity()] = e
	}
	e.findings = append(e.findings, finding)
}

// Empty reports whether no findings were ever added.
func (a *Aggregate) Empty() bool { return len(a.entries) == 0 }

// Count returns the total number of findings across all sources.
func (a *Aggregate) Count() int {
	n := 0
	for _, e := range a.entries {
		n += len(e.findings)
	}
	return n
}

// Sources returns the sources in render order: mods before classes before
// packages, then ascending by identity.
func (a *Aggregate) Sources() []Source {
	entries := sortedEntries(a.entries)
	srcs := make([]Source, len(entries))
	for i, e := range entries {
		srcs[i] = e.src
	}
	return srcs
}

// Findings returns the findings recorded under the given source's identity,
// in insertion order.
func (a *Aggregate) Findings(src Source) []string {
	e, ok := a.entries[src.Identity()]
	if !ok {
		return nil
	}
	return slices.Clone(e.findings)
}

func sortedEntries(m map[string]*entry) []*entry {
	entries := maps.Values(m)
	slices.SortFunc(entries, func(x, y *entry) int {
		if rx, ry := x.src.rank(), y.src.rank(); rx != ry {
			return rx - ry
		}
		return strings.Compare(x.src.Identity(), y.src.Identity())
	})
	return entries
}
