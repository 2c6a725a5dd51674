// SPDX-License-Identifier: MPL-2.0

// Package loader abstracts the host that provides the installed mod list.
// The evaluation core consumes mods only through the interfaces defined
// here; DirHost is the concrete host that discovers mods on disk.
package loader

import (
	"io/fs"

	"github.com/modsleuth/modsleuth/pkg/modmeta"
)

type (
	// Host enumerates the installed mods.
	Host interface {
		// Mods returns the installed mod list. Enumeration order carries no
		// meaning; reports are re-sorted downstream.
		Mods() ([]Mod, error)
	}

	// Mod is one installed mod as provided by the host.
	Mod interface {
		// Metadata returns the mod's parsed metadata record.
		Metadata() *modmeta.Record
		// ResolvePath resolves a path relative to the mod's package root.
		ResolvePath(rel string) Path
		// Root opens the mod's package root for recursive listing.
		Root() (fs.FS, error)
		// Origin is the loader identity shown in reports: the archive or
		// directory base name.
		Origin() string
	}

	// Path is a package-relative path handle supporting existence checks.
	Path interface {
		// Exists reports whether a file exists at the path. The error is
		// non-nil only for I/O failures, never for plain absence.
		Exists() (bool, error)
	}
)
