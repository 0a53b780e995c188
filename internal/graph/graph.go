// Package graph assigns dense FileIDs to every discovered source file,
// parses them in parallel, and wires resolved specifiers into a
// ProjectGraph of edges for the reachability and usage stages to walk.
package graph

import (
	"sweepy/internal/jsast"
)

// FileID is a dense, zero-based index into ProjectGraph.Files, assigned
// in lexicographic order of each file's root-relative path so that the
// same project produces the same IDs across runs.
type FileID int

// EdgeKind distinguishes the import/re-export forms that connect one
// file to another in the graph.
type EdgeKind string

const (
	EdgeNamed             EdgeKind = "named"
	EdgeDefault           EdgeKind = "default"
	EdgeNamespace         EdgeKind = "namespace"
	EdgeSideEffect        EdgeKind = "side_effect"
	EdgeStarReexport      EdgeKind = "star_reexport"
	EdgeNamedReexport     EdgeKind = "named_reexport"
	EdgeNamespaceReexport EdgeKind = "namespace_reexport"
)

// Edge is one resolved specifier: an import or re-export in From's
// ModuleFacts that points at To. Named/NamedReexport edges carry the
// bound or re-exported names; NamespaceReexport edges carry the exposed
// aggregate name. Unresolved and bare specifiers never produce an Edge —
// the originating binding still lives in From's ModuleFacts.
type Edge struct {
	To      FileID
	Kind    EdgeKind
	Named   []jsast.NamedBinding
	Items   []jsast.ReexportItem
	Exposed string
}

// File is one node in the graph: its root-relative path and the facts
// extracted from it. Facts is jsast.Empty() for files that failed to
// read or parse, and for synthetic entry files discovered only during
// reachability. ContentHash is empty for synthetic files and is never
// consulted by the analyzer itself — it exists for graph-dump callers
// that want to diff two runs without sweepy keeping any state.
type File struct {
	RelPath     string
	AbsPath     string
	Facts       *jsast.ModuleFacts
	ContentHash string
}

// ProjectGraph is the full module graph for one Analyze call.
type ProjectGraph struct {
	Files  []File
	Edges  map[FileID][]Edge
	ByPath map[string]FileID // keyed by root-relative path
}

// AddSynthetic registers an entry path that was never discovered by the
// walk, so the reachability engine still has a node for it and it can
// appear as reachable. It is idempotent: resolving the same path twice
// returns the same FileID.
func (g *ProjectGraph) AddSynthetic(relPath, absPath string) FileID {
	if id, ok := g.ByPath[relPath]; ok {
		return id
	}
	id := FileID(len(g.Files))
	g.Files = append(g.Files, File{RelPath: relPath, AbsPath: absPath, Facts: jsast.Empty()})
	g.ByPath[relPath] = id
	return id
}
