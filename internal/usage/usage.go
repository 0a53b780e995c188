// Package usage propagates which declared exports of reachable files are
// actually consumed, following re-export chains the way a bundler's
// tree-shaker would, then reports the unused complement.
package usage

import "sweepy/internal/graph"

// FileUsage records which export names of one file are known to be
// used. All subsumes any finite name set: a namespace import marks a
// file's usage as All rather than enumerating every export.
type FileUsage struct {
	All   bool
	Names map[string]bool
}

func (u *FileUsage) isUsed(name string) bool {
	return u.All || u.Names[name]
}

type nameKey struct {
	file graph.FileID
	name string
}

type propagator struct {
	g    *graph.ProjectGraph
	used map[graph.FileID]*FileUsage
}

func (p *propagator) usage(file graph.FileID) *FileUsage {
	u, ok := p.used[file]
	if !ok {
		u = &FileUsage{Names: make(map[string]bool)}
		p.used[file] = u
	}
	return u
}

func (p *propagator) markUsed(file graph.FileID, name string) {
	p.usage(file).Names[name] = true
}

func (p *propagator) markAllUsed(file graph.FileID) {
	p.usage(file).All = true
}

func (p *propagator) declares(file graph.FileID, name string) bool {
	if int(file) < 0 || int(file) >= len(p.g.Files) || p.g.Files[file].Facts == nil {
		return false
	}
	for _, exp := range p.g.Files[file].Facts.Exports {
		if exp.Name == name {
			return true
		}
	}
	return false
}

// markNamed resolves a named import of name on file, following
// NamedReexport and StarReexport chains lazily when file does not
// declare name itself. It returns whether a declaration was found and
// marked. visited guards against cycles within this one resolution.
func (p *propagator) markNamed(file graph.FileID, name string, visited map[nameKey]bool) bool {
	key := nameKey{file, name}
	if visited[key] {
		return false
	}
	visited[key] = true

	if p.declares(file, name) {
		p.markUsed(file, name)
		return true
	}

	for _, edge := range p.g.Edges[file] {
		if edge.Kind != graph.EdgeNamedReexport {
			continue
		}
		for _, item := range edge.Items {
			if item.ExposedName == name && p.markNamed(edge.To, item.SourceName, visited) {
				return true
			}
		}
	}

	for _, edge := range p.g.Edges[file] {
		if edge.Kind != graph.EdgeStarReexport {
			continue
		}
		if p.markNamed(edge.To, name, visited) {
			return true
		}
	}

	return false
}

// markNamespace marks every declared export of file used, then burns
// through every StarReexport (recursively, as a namespace import of the
// target), every NamedReexport (marking each source name used on its
// source file), and every NamespaceReexport (as a namespace import of
// its source file). visited guards the star/namespace recursion against
// cycles.
func (p *propagator) markNamespace(file graph.FileID, visited map[graph.FileID]bool) {
	if visited[file] {
		return
	}
	visited[file] = true
	p.markAllUsed(file)

	for _, edge := range p.g.Edges[file] {
		switch edge.Kind {
		case graph.EdgeStarReexport:
			p.markNamespace(edge.To, visited)
		case graph.EdgeNamedReexport:
			for _, item := range edge.Items {
				p.markNamed(edge.To, item.SourceName, map[nameKey]bool{})
			}
		case graph.EdgeNamespaceReexport:
			p.markNamespace(edge.To, visited)
		}
	}
}

// Propagate computes per-file export usage by walking every import edge
// originating from a reachable file. Edges originating outside reached
// contribute nothing, matching the report's rule that only reachable
// files are considered at all.
func Propagate(g *graph.ProjectGraph, reached map[graph.FileID]bool) map[graph.FileID]*FileUsage {
	p := &propagator{g: g, used: make(map[graph.FileID]*FileUsage)}

	for id := range reached {
		for _, edge := range g.Edges[id] {
			switch edge.Kind {
			case graph.EdgeNamed:
				for _, nb := range edge.Named {
					p.markNamed(edge.To, nb.ImportedName, map[nameKey]bool{})
				}
			case graph.EdgeDefault:
				p.markUsed(edge.To, "default")
			case graph.EdgeNamespace:
				p.markNamespace(edge.To, map[graph.FileID]bool{})
			case graph.EdgeSideEffect, graph.EdgeStarReexport, graph.EdgeNamedReexport, graph.EdgeNamespaceReexport:
				// Reachability and re-export edges route; they never mark usage
				// directly (rules 1, 5, 6).
			}
		}
	}

	return p.used
}
