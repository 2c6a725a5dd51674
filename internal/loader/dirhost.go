// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/modsleuth/modsleuth/pkg/modmeta"
)

// DirHost discovers mods in a single directory: packaged mods as .jar or
// .zip archives, unpacked mods as subdirectories containing a mod.json.
// Archives opened by Mods stay open until Close so that path handles and
// Root filesystems remain usable for the run.
type DirHost struct {
	// Dir is the mods directory.
	Dir string

	opened []*zip.ReadCloser
}

// NewDirHost returns a host reading mods from dir.
func NewDirHost(dir string) *DirHost {
	return &DirHost{Dir: dir}
}

// Mods scans the directory in lexical order. A mod whose archive or metadata
// cannot be read is skipped with a logged warning so the rest of the list
// still loads; an unlistable mods directory is an error.
func (h *DirHost) Mods() ([]Mod, error) {
	entries, err := os.ReadDir(h.Dir)
	if err != nil {
		return nil, fmt.Errorf("list mods directory %s: %w", h.Dir, err)
	}

	var mods []Mod
	for _, entry := range entries {
		full := filepath.Join(h.Dir, entry.Name())
		var (
			mod Mod
			ok  bool
		)
		switch {
		case entry.IsDir():
			mod, ok = h.loadDir(full)
		case isArchiveName(entry.Name()):
			mod, ok = h.loadArchive(full)
		default:
			continue
		}
		if ok {
			mods = append(mods, mod)
		}
	}
	return mods, nil
}

// Close releases the archives opened by Mods.
func (h *DirHost) Close() error {
	var errs []error
	for _, rc := range h.opened {
		if err := rc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.opened = nil
	return errors.Join(errs...)
}

func (h *DirHost) loadArchive(path string) (Mod, bool) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		slog.Warn("skipping unreadable mod archive", "path", path, "error", err)
		return nil, false
	}

	rec, err := readMetadata(&rc.Reader)
	if err != nil {
		slog.Warn("skipping mod with unusable metadata", "path", path, "error", err)
		_ = rc.Close()
		return nil, false
	}

	h.opened = append(h.opened, rc)
	return &fsMod{fsys: &rc.Reader, rec: rec, origin: filepath.Base(path)}, true
}

func (h *DirHost) loadDir(path string) (Mod, bool) {
	fsys := os.DirFS(path)
	if _, err := fs.Stat(fsys, modmeta.MetadataFilename); err != nil {
		// A subdirectory without a mod.json is not a mod.
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("skipping unreadable mod directory", "path", path, "error", err)
		}
		return nil, false
	}

	rec, err := readMetadata(fsys)
	if err != nil {
		slog.Warn("skipping mod with unusable metadata", "path", path, "error", err)
		return nil, false
	}
	return &fsMod{fsys: fsys, rec: rec, origin: filepath.Base(path)}, true
}

func readMetadata(fsys fs.FS) (*modmeta.Record, error) {
	data, err := fs.ReadFile(fsys, modmeta.MetadataFilename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", modmeta.MetadataFilename, err)
	}
	return modmeta.Parse(data)
}

func isArchiveName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jar" || ext == ".zip"
}

// fsMod is a mod backed by an fs.FS, either a zip archive or a directory.
type fsMod struct {
	fsys   fs.FS
	rec    *modmeta.Record
	origin string
}

// Metadata returns the parsed mod.json record.
func (m *fsMod) Metadata() *modmeta.Record { return m.rec }

// Origin returns the archive or directory base name.
func (m *fsMod) Origin() string { return m.origin }

// Root returns the mod's package filesystem.
func (m *fsMod) Root() (fs.FS, error) { return m.fsys, nil }

// ResolvePath returns a handle for a path relative to the package root.
func (m *fsMod) ResolvePath(rel string) Path {
	return fsPath{fsys: m.fsys, rel: rel}
}

// fsPath checks existence inside a mod's package filesystem.
type fsPath struct {
	fsys fs.FS
	rel  string
}

// Exists distinguishes absence from I/O failure.
func (p fsPath) Exists() (bool, error) {
	_, err := fs.Stat(p.fsys, p.rel)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
