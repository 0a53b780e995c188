// Package resolver maps an import specifier plus the importing file's
// absolute path to an absolute path on disk, the way a real ES module
// resolver would: relative paths, an alias table, and
// extension/directory-index search.
package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"sweepy/internal/config"
	"sweepy/internal/paths"
)

type aliasEntry struct {
	prefix string
	target string
}

// Resolver resolves specifier strings against one project root. It is
// scoped to a single Analyze call: its existence-check cache is never
// persisted or shared across invocations.
type Resolver struct {
	root       string
	aliases    []aliasEntry
	extensions []string
	cache      *lru.Cache[string, bool]
}

// New builds a Resolver for root using cfg's alias table and extension
// list. A nil cfg resolves to config.Default().
func New(root string, cfg *config.Config) *Resolver {
	cache, _ := lru.New[string, bool](8192)

	entries := make([]aliasEntry, 0, len(cfg.ResolvedAliases()))
	for prefix, target := range cfg.ResolvedAliases() {
		resolvedTarget := target
		if !filepath.IsAbs(resolvedTarget) {
			// Alias targets in config are written as repo-relative,
			// forward-slash paths (e.g. "src"), so join them the same
			// way the rest of sweepy turns a canonical path back into
			// one on disk.
			resolvedTarget = paths.JoinRepoPath(root, resolvedTarget)
		}
		entries = append(entries, aliasEntry{prefix: prefix, target: resolvedTarget})
	}
	// Longest prefix wins; ties broken lexicographically by key since Go
	// maps do not preserve declaration order.
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].prefix) != len(entries[j].prefix) {
			return len(entries[i].prefix) > len(entries[j].prefix)
		}
		return entries[i].prefix < entries[j].prefix
	})

	return &Resolver{
		root:       root,
		aliases:    entries,
		extensions: cfg.ResolvedExtensions(),
		cache:      cache,
	}
}

// Resolve maps specifier, imported from fromAbsPath, to a canonical
// absolute path on disk. The second return is false when the specifier
// is bare (no alias match) or resolves to no existing file — both are
// silently-dropped cases per the resolver's contract, never errors.
func (r *Resolver) Resolve(fromAbsPath, specifier string) (string, bool) {
	var joined string
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		joined = filepath.Join(filepath.Dir(fromAbsPath), specifier)
	default:
		target, remainder, ok := r.matchAlias(specifier)
		if !ok {
			return "", false
		}
		joined = filepath.Join(target, remainder)
	}

	candidate, ok := r.tryResolve(joined)
	if !ok {
		return "", false
	}
	return r.canonicalAbs(candidate), true
}

func (r *Resolver) matchAlias(specifier string) (target, remainder string, ok bool) {
	for _, entry := range r.aliases {
		if !segmentPrefixMatch(specifier, entry.prefix) {
			continue
		}
		rest := strings.TrimPrefix(specifier, entry.prefix)
		rest = strings.TrimPrefix(rest, "/")
		return entry.target, rest, true
	}
	return "", "", false
}

// segmentPrefixMatch reports whether key matches specifier's leading
// path segment(s) exactly, rather than being matched as an arbitrary
// substring.
func segmentPrefixMatch(specifier, key string) bool {
	if specifier == key {
		return true
	}
	if !strings.HasPrefix(specifier, key) {
		return false
	}
	if strings.HasSuffix(key, "/") {
		return true
	}
	return len(specifier) > len(key) && specifier[len(key)] == '/'
}

func (r *Resolver) tryResolve(joined string) (string, bool) {
	if hasSupportedExt(joined, r.extensions) && r.exists(joined) {
		return joined, true
	}
	for _, ext := range r.extensions {
		cand := joined + ext
		if r.exists(cand) {
			return cand, true
		}
	}
	for _, ext := range r.extensions {
		cand := filepath.Join(joined, "index"+ext)
		if r.exists(cand) {
			return cand, true
		}
	}
	return "", false
}

func hasSupportedExt(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (r *Resolver) exists(path string) bool {
	if cached, ok := r.cache.Get(path); ok {
		return cached
	}
	info, err := os.Stat(path)
	exists := err == nil && !info.IsDir()
	r.cache.Add(path, exists)
	return exists
}

// canonicalAbs resolves symlinks and collapses "."/".." segments so that
// two specifiers pointing at the same on-disk file share one canonical
// path, and therefore one FileID.
func (r *Resolver) canonicalAbs(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(resolved)
	}
	return filepath.Clean(path)
}
