// Package paths turns an absolute filesystem path into the repo-relative,
// forward-slash form sweepy uses as a graph.File's RelPath, and back
// again.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// CanonicalizePath expresses absolutePath relative to repoRoot, with
// forward slashes, after resolving symlinks on both sides so two
// different paths to the same on-disk file canonicalize identically.
// A path that doesn't exist yet (a synthetic entry, a file discovery
// hasn't reached) resolves to itself rather than erroring.
func CanonicalizePath(absolutePath, repoRoot string) (string, error) {
	resolvedPath, err := resolveOrSelf(absolutePath)
	if err != nil {
		return "", err
	}
	resolvedRoot, err := resolveOrSelf(repoRoot)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(resolvedRoot, resolvedPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// resolveOrSelf resolves path's symlinks, falling back to path itself
// when nothing exists there yet.
func resolveOrSelf(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	return resolved, nil
}

// IsWithinRepo reports whether path canonicalizes to somewhere under
// repoRoot, rather than climbing out of it with a leading "..".
func IsWithinRepo(path, repoRoot string) bool {
	canonical, err := CanonicalizePath(path, repoRoot)
	return err == nil && !strings.HasPrefix(canonical, "..")
}

// NormalizePath converts path's separators to forward slashes without
// touching the filesystem or making it relative to anything. It is the
// fallback CanonicalizePath's callers reach for when canonicalization
// itself errors.
func NormalizePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}

// JoinRepoPath is CanonicalizePath's inverse: it rebuilds an absolute
// path from repoRoot and a canonical, forward-slash, repo-relative
// path, splitting on "/" explicitly so the join is correct regardless
// of the host OS's own separator.
func JoinRepoPath(repoRoot, canonicalPath string) string {
	segments := strings.Split(strings.ReplaceAll(canonicalPath, "\\", "/"), "/")
	return filepath.Join(append([]string{repoRoot}, segments...)...)
}
