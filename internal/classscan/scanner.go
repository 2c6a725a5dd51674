// SPDX-License-Identifier: MPL-2.0

// Package classscan walks the class files inside installed mod archives and
// extra classpath roots, and answers subtype queries over the collected
// hierarchy. It implements the scanner capability consumed by detect.
package classscan

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/modsleuth/modsleuth/internal/detect"
	"github.com/modsleuth/modsleuth/internal/loader"
)

// Scanner finds subtypes of a base class across every installed mod plus the
// configured extra classpath roots. The hierarchy is rebuilt per query; a
// detection run performs exactly one.
type Scanner struct {
	host         loader.Host
	roots        []string
	mappingsPath string
}

// classEntry is one scanned class with the identity of the mod archive it
// came from. Classes from extra roots carry an empty origin.
type classEntry struct {
	header classHeader
	origin string
}

// New returns a Scanner over the host's mods. roots lists extra classpath
// roots (directories or zip archives) to include in the hierarchy, and
// mappingsPath optionally names a TOML file translating intermediary class
// names to the runtime names found in class files. An empty mappingsPath
// means names are already runtime names.
func New(host loader.Host, roots []string, mappingsPath string) *Scanner {
	return &Scanner{host: host, roots: roots, mappingsPath: mappingsPath}
}

// FindSubtypeNames returns every scanned class that is a strict subtype of
// baseType and whose simple name ends in nameSuffix, sorted by name. The
// base type itself is looked up through the mappings; a configured mappings
// file that cannot resolve it fails the query.
func (s *Scanner) FindSubtypeNames(ctx context.Context, baseType, nameSuffix string) ([]detect.ClassHit, error) {
	target, err := s.resolveRuntimeName(baseType)
	if err != nil {
		return nil, err
	}

	entries, err := s.collectEntries(ctx)
	if err != nil {
		return nil, err
	}

	subtypes := subtypeClosure(entries, target)

	var hits []detect.ClassHit
	seen := map[string]bool{}
	for _, e := range entries {
		name := e.header.name
		if seen[name] || !subtypes[name] {
			continue
		}
		if !strings.HasSuffix(simpleName(name), nameSuffix) {
			continue
		}
		seen[name] = true
		hits = append(hits, detect.ClassHit{Name: name, Origin: e.origin})
	}

	slices.SortFunc(hits, func(a, b detect.ClassHit) int {
		return strings.Compare(a.Name, b.Name)
	})
	return hits, nil
}

// resolveRuntimeName translates an intermediary class name through the
// configured mappings file. Without one the name passes through unchanged.
func (s *Scanner) resolveRuntimeName(name string) (string, error) {
	if s.mappingsPath == "" {
		return name, nil
	}
	m, err := LoadMappings(s.mappingsPath)
	if err != nil {
		return "", err
	}
	return m.Resolve(name)
}

// collectEntries walks every mod root and extra classpath root. Unreadable
// mods and roots degrade the scan with a warning instead of aborting it;
// only an unlistable host or a canceled context is fatal.
func (s *Scanner) collectEntries(ctx context.Context) ([]classEntry, error) {
	var entries []classEntry

	mods, err := s.host.Mods()
	if err != nil {
		return nil, fmt.Errorf("list installed mods: %w", err)
	}
	for _, mod := range mods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root, err := mod.Root()
		if err != nil {
			slog.Warn("skipping mod in class scan", "mod", mod.Metadata().ID, "error", err)
			continue
		}
		entries = walkClassFiles(entries, root, mod.Origin())
	}

	for _, root := range s.roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fsys, done, err := openRoot(root)
		if err != nil {
			slog.Warn("skipping classpath root", "root", root, "error", err)
			continue
		}
		entries = walkClassFiles(entries, fsys, "")
		done()
	}

	return entries, nil
}

// walkClassFiles appends a classEntry for every decodable .class file under
// fsys. Malformed candidates are skipped: archives routinely contain
// resources with misleading names.
func walkClassFiles(entries []classEntry, fsys fs.FS, origin string) []classEntry {
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("class scan cannot read path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			slog.Warn("class scan cannot read file", "path", path, "error", err)
			return nil
		}
		hdr, err := parseClassHeader(data)
		if err != nil {
			return nil
		}
		entries = append(entries, classEntry{header: hdr, origin: origin})
		return nil
	})
	return entries
}

// openRoot opens an extra classpath root, which may be a directory or a zip
// archive. done releases the archive handle and is a no-op for directories.
func openRoot(path string) (fsys fs.FS, done func(), err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return os.DirFS(path), func() {}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open classpath archive: %w", err)
	}
	return zr, func() {
		if cerr := zr.Close(); cerr != nil {
			slog.Warn("closing classpath archive", "root", path, "error", cerr)
		}
	}, nil
}

// subtypeClosure returns the set of class names transitively extending base.
// The base itself is not a member.
func subtypeClosure(entries []classEntry, base string) map[string]bool {
	children := map[string][]string{}
	for _, e := range entries {
		if e.header.super == "" {
			continue
		}
		children[e.header.super] = append(children[e.header.super], e.header.name)
	}

	closure := map[string]bool{}
	queue := []string{base}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if closure[child] {
				continue
			}
			closure[child] = true
			queue = append(queue, child)
		}
	}
	return closure
}

// simpleName strips the package and any enclosing class names from a dotted
// fully-qualified class name.
func simpleName(fqcn string) string {
	s := fqcn
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '$'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
