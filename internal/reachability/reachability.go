// Package reachability walks a module graph outward from a set of entry
// files, discovering every file transitively reachable through any edge
// kind equally — an import and a re-export both count as reachability.
package reachability

import (
	"sort"

	"sweepy/internal/graph"
)

// Walk performs a breadth-first walk from entries over g's edges and
// returns the set of reached FileIDs, including the entries themselves.
func Walk(g *graph.ProjectGraph, entries []graph.FileID) map[graph.FileID]bool {
	reached := make(map[graph.FileID]bool, len(entries))
	queue := make([]graph.FileID, 0, len(entries))

	for _, e := range entries {
		if !reached[e] {
			reached[e] = true
			queue = append(queue, e)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, edge := range g.Edges[id] {
			if !reached[edge.To] {
				reached[edge.To] = true
				queue = append(queue, edge.To)
			}
		}
	}

	return reached
}

// SortedRelPaths returns the root-relative paths of every file in
// reached, sorted ascending — the exact ordering the final report uses
// for reachableFiles.
func SortedRelPaths(g *graph.ProjectGraph, reached map[graph.FileID]bool) []string {
	paths := make([]string, 0, len(reached))
	for id := range reached {
		paths = append(paths, g.Files[id].RelPath)
	}
	sort.Strings(paths)
	return paths
}
