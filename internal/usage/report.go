package usage

import (
	"sweepy/internal/graph"
	"sweepy/internal/output"
	"sweepy/internal/reachability"
)

// UnusedExport is one declared export of a reachable file that was never
// marked used.
type UnusedExport struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// Report is the final, fully-sorted output of one analysis run.
type Report struct {
	ReachableFiles []string       `json:"reachableFiles"`
	UnusedExports  []UnusedExport `json:"unusedExports"`
}

// BuildReport sorts reachableFiles ascending and collects every declared
// export of a reachable file not covered by used, sorted by (file, name).
// Declared exports of unreachable files never appear here.
func BuildReport(g *graph.ProjectGraph, reached map[graph.FileID]bool, used map[graph.FileID]*FileUsage) Report {
	var unused []UnusedExport
	for id := range reached {
		fu := used[id]
		if fu != nil && fu.All {
			continue
		}
		facts := g.Files[id].Facts
		if facts == nil {
			continue
		}
		for _, exp := range facts.Exports {
			if fu == nil || !fu.isUsed(exp.Name) {
				unused = append(unused, UnusedExport{File: g.Files[id].RelPath, Name: exp.Name})
			}
		}
	}

	// Error is only possible for an unsupported field name, which would
	// be a programming error in the field names below, not a runtime
	// condition BuildReport's callers can hit.
	_ = output.SortByTwoFields(&unused, "File", "Name")

	return Report{
		ReachableFiles: reachability.SortedRelPaths(g, reached),
		UnusedExports:  unused,
	}
}
