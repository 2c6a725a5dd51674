// SPDX-License-Identifier: MPL-2.0

// Package detect runs the defect rules over the installed mod list and
// collects every finding into a single report.Aggregate. Rules never abort
// the run: infrastructure failures (unreadable files, failed scans) are
// logged as warnings and the affected rule simply does not fire.
package detect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modsleuth/modsleuth/internal/loader"
	"github.com/modsleuth/modsleuth/internal/report"
	"github.com/modsleuth/modsleuth/pkg/modmeta"
)

const (
	// refmapName is the default refmap file name a known broken remote
	// build pipeline emits when no unique name was configured.
	refmapName = "build-refmap.json"

	// containerBaseType is the intermediary name of the UI container base
	// type. Its subtypes collide with the Container name suffix because the
	// base type itself is conventionally known under an unrelated alias.
	containerBaseType = "net.minecraft.class_1703"

	// containerSuffix is the simple-name suffix checked by the class
	// collision rule.
	containerSuffix = "Container"
)

type (
	// Options configures a detection run.
	Options struct {
		// Host provides the installed mod list.
		Host loader.Host
		// Scanner enables the class collision rule when non-nil. A nil
		// scanner turns the rule off without affecting the others.
		Scanner SubtypeScanner
	}

	// SubtypeScanner finds loaded classes that are subtypes of a base type
	// and whose simple name ends in the given suffix. Implementations live
	// outside this package; classscan provides the archive-walking one.
	SubtypeScanner interface {
		FindSubtypeNames(ctx context.Context, baseType, nameSuffix string) ([]ClassHit, error)
	}

	// ClassHit is one class found by a SubtypeScanner. Name is the dotted
	// fully-qualified class name. Origin is the loader identity (the mod
	// archive base name) when known, or empty for classes found on extra
	// classpath roots.
	ClassHit struct {
		Name   string
		Origin string
	}
)

// Detect evaluates every rule over the host's mod list and returns the
// populated aggregate. The aggregate is returned as a value even when
// findings exist; escalating a non-empty aggregate to a failure is the
// caller's decision. The returned error is non-nil only for infrastructure
// failures such as an unlistable mods directory.
func Detect(ctx context.Context, opts Options) (*report.Aggregate, error) {
	agg := report.NewAggregate()

	mods, err := opts.Host.Mods()
	if err != nil {
		return nil, fmt.Errorf("list installed mods: %w", err)
	}

	for _, mod := range mods {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("detection canceled: %w", err)
		}
		evaluateMetadata(mod.Metadata(), agg)
		evaluateRefmap(mod, agg)
	}

	// The class scan runs once per detection, not per mod: it covers every
	// mod archive plus the configured extra roots in a single pass.
	if opts.Scanner != nil {
		evaluateClassCollisions(ctx, opts.Scanner, agg)
	}

	return agg, nil
}

// modSource builds the report source for a mod's metadata record.
func modSource(rec *modmeta.Record) report.ModSource {
	return report.ModSource{ID: rec.ID, Name: rec.Name, Authors: rec.AuthorNames()}
}

// evaluateMetadata applies the metadata rules to one mod. The rules are
// independent; a mod may trigger any subset of them.
func evaluateMetadata(rec *modmeta.Record, agg *report.Aggregate) {
	src := modSource(rec)

	// An unreplaced placeholder means the build tool that was supposed to
	// substitute the real version never ran.
	if rec.Version == "$version" || rec.Version == "${version}" {
		agg.Add(src, "Missing version replacement: "+rec.Version)
	}

	switch rec.Tier {
	case modmeta.Tier0:
		agg.Add(src, "Outdated schema: v0")
	case modmeta.LatestTier:
		rec.EmitFormatWarnings(func(message string) {
			agg.Add(src, message)
		})
	}
	// Tier 1 records are accepted without findings.
}

// evaluateRefmap checks for the misnamed refmap file at the mod's package
// root. Existence-check failures downgrade to a warning; the other mods'
// evaluation is unaffected.
func evaluateRefmap(mod loader.Mod, agg *report.Aggregate) {
	exists, err := mod.ResolvePath(refmapName).Exists()
	if err != nil {
		slog.Warn("skipping refmap check for mod", "mod", mod.Metadata().ID, "error", err)
		return
	}
	if exists {
		agg.Add(modSource(mod.Metadata()), "Found unnamed mixin refmap '"+refmapName+"'")
	}
}

// evaluateClassCollisions records every subtype of the UI container base
// type whose simple name ends in the Container suffix. Hits from a known
// mod archive are attributed to the class; hits from extra classpath roots
// fall back to a package prefix since per-mod ownership is unknown there.
func evaluateClassCollisions(ctx context.Context, scanner SubtypeScanner, agg *report.Aggregate) {
	hits, err := scanner.FindSubtypeNames(ctx, containerBaseType, containerSuffix)
	if err != nil {
		slog.Warn("skipping class collision check", "baseType", containerBaseType, "error", err)
		return
	}

	for _, hit := range hits {
		var src report.Source = report.PackageOf(hit.Name)
		if hit.Origin != "" {
			src = report.ClassSource{Name: hit.Name, Loader: hit.Origin}
		}
		agg.Add(src, "Menu is called 'con tater': "+hit.Name)
	}
}
