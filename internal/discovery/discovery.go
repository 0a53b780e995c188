// Package discovery walks a project root (and any configured extra
// source roots) to find every file worth parsing: non-core, ordinary
// filesystem plumbing that feeds the module graph builder.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"sweepy/internal/graph"
	"sweepy/internal/paths"
)

// Walk returns every file under root and extraRoots whose extension is
// in extensions, skipping any directory whose base name is in
// ignoreDirs. Results are sorted by root-relative path (forward
// slashes), matching the FileID assignment order graph.Build expects.
// If the walk hits an error it stops there and returns the files found
// so far, still sorted, together with that error.
func Walk(root string, extraRoots []string, extensions, ignoreDirs []string) ([]graph.SourceFile, error) {
	extSet := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		extSet[e] = true
	}
	ignoreSet := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignoreSet[d] = true
	}

	var files []graph.SourceFile
	roots := append([]string{root}, extraRoots...)
	seen := make(map[string]bool)

	var walkErr error
	for _, r := range roots {
		if err := walkRoot(r, r, extSet, ignoreSet, seen, &files); err != nil {
			walkErr = err
			break
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, walkErr
}

func walkRoot(walkRootDir, relTo string, extSet, ignoreSet map[string]bool, seen map[string]bool, out *[]graph.SourceFile) error {
	info, err := os.Stat(walkRootDir)
	if err != nil || !info.IsDir() {
		return err
	}

	entries, err := os.ReadDir(walkRootDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		abs := filepath.Join(walkRootDir, entry.Name())
		if entry.IsDir() {
			if ignoreSet[entry.Name()] {
				continue
			}
			if err := walkRoot(abs, relTo, extSet, ignoreSet, seen, out); err != nil {
				return err
			}
			continue
		}
		if !extSet[filepath.Ext(entry.Name())] {
			continue
		}
		canonical, err := filepath.EvalSymlinks(abs)
		if err != nil {
			canonical = abs
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		rel, err := paths.CanonicalizePath(canonical, relTo)
		if err != nil {
			rel = paths.NormalizePath(abs)
		}
		*out = append(*out, graph.SourceFile{RelPath: rel, AbsPath: canonical})
	}
	return nil
}
