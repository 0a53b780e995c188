package usage

import (
	"reflect"
	"testing"

	"sweepy/internal/graph"
	"sweepy/internal/jsast"
)

func fileWithExports(names ...string) graph.File {
	facts := jsast.Empty()
	for _, n := range names {
		facts.Exports = append(facts.Exports, jsast.ExportRecord{Name: n, Kind: jsast.ExportDeclared})
	}
	return graph.File{Facts: facts}
}

func newGraph(files []graph.File, edges map[graph.FileID][]graph.Edge) *graph.ProjectGraph {
	g := &graph.ProjectGraph{Files: files, Edges: edges, ByPath: make(map[string]graph.FileID)}
	if g.Edges == nil {
		g.Edges = make(map[graph.FileID][]graph.Edge)
	}
	for i, f := range files {
		g.ByPath[f.RelPath] = graph.FileID(i)
	}
	return g
}

func namedImport(to graph.FileID, names ...string) graph.Edge {
	bindings := make([]jsast.NamedBinding, len(names))
	for i, n := range names {
		bindings[i] = jsast.NamedBinding{ImportedName: n, LocalName: n}
	}
	return graph.Edge{To: to, Kind: graph.EdgeNamed, Named: bindings}
}

// TestNamedImportPartialUse mirrors the "Named partial use" scenario:
// an entry imports one of two named exports from a leaf module.
func TestNamedImportPartialUse(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	leaf := fileWithExports("used", "unused")
	leaf.RelPath = "leaf.ts"

	g := newGraph([]graph.File{entry, leaf}, map[graph.FileID][]graph.Edge{
		0: {namedImport(1, "used")},
	})

	reached := map[graph.FileID]bool{0: true, 1: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if !reflect.DeepEqual(report.ReachableFiles, []string{"entry.ts", "leaf.ts"}) {
		t.Fatalf("reachableFiles = %v", report.ReachableFiles)
	}
	if !reflect.DeepEqual(report.UnusedExports, []UnusedExport{{File: "leaf.ts", Name: "unused"}}) {
		t.Errorf("unusedExports = %+v, want [leaf.ts unused]", report.UnusedExports)
	}
}

// TestDefaultVsNamedIndependence: importing the default export leaves a
// named export on the same file unused, and vice versa.
func TestDefaultVsNamedIndependence(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	leaf := graph.File{RelPath: "leaf.ts", Facts: &jsast.ModuleFacts{Exports: []jsast.ExportRecord{
		{Name: "default", Kind: jsast.ExportDefault},
		{Name: "helper", Kind: jsast.ExportDeclared},
	}}}

	g := newGraph([]graph.File{entry, leaf}, map[graph.FileID][]graph.Edge{
		0: {{To: 1, Kind: graph.EdgeDefault}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if !reflect.DeepEqual(report.UnusedExports, []UnusedExport{{File: "leaf.ts", Name: "helper"}}) {
		t.Errorf("unusedExports = %+v, want [leaf.ts helper]", report.UnusedExports)
	}
}

// TestNamespaceImportMarksAllExports covers "import * as ns" marking
// every declared export of the target used.
func TestNamespaceImportMarksAllExports(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	leaf := fileWithExports("a", "b", "c")
	leaf.RelPath = "leaf.ts"

	g := newGraph([]graph.File{entry, leaf}, map[graph.FileID][]graph.Edge{
		0: {{To: 1, Kind: graph.EdgeNamespace}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if len(report.UnusedExports) != 0 {
		t.Errorf("unusedExports = %+v, want none", report.UnusedExports)
	}
}

// TestBarrelStarRouting covers a named import of a barrel file that
// routes through `export * from "./leaf"` to the declaring module.
func TestBarrelStarRouting(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	barrel := graph.File{RelPath: "barrel.ts", Facts: jsast.Empty()}
	leaf := fileWithExports("helper", "other")
	leaf.RelPath = "leaf.ts"

	g := newGraph([]graph.File{entry, barrel, leaf}, map[graph.FileID][]graph.Edge{
		0: {namedImport(1, "helper")},
		1: {{To: 2, Kind: graph.EdgeStarReexport}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true, 2: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if !reflect.DeepEqual(report.UnusedExports, []UnusedExport{{File: "leaf.ts", Name: "other"}}) {
		t.Errorf("unusedExports = %+v, want [leaf.ts other]", report.UnusedExports)
	}
}

// TestSideEffectOnlyImportMarksNothing: a side-effect import makes its
// target reachable but marks no export used.
func TestSideEffectOnlyImportMarksNothing(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	leaf := fileWithExports("helper")
	leaf.RelPath = "leaf.ts"

	g := newGraph([]graph.File{entry, leaf}, map[graph.FileID][]graph.Edge{
		0: {{To: 1, Kind: graph.EdgeSideEffect}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if !reflect.DeepEqual(report.UnusedExports, []UnusedExport{{File: "leaf.ts", Name: "helper"}}) {
		t.Errorf("unusedExports = %+v, want [leaf.ts helper]", report.UnusedExports)
	}
}

// TestNamedReexportRoutesToOriginalFile: importing an exposed name from
// a re-exporting file marks the original declaring file, not the
// forwarding one.
func TestNamedReexportRoutesToOriginalFile(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	forwarder := graph.File{RelPath: "forwarder.ts", Facts: jsast.Empty()}
	original := fileWithExports("value")
	original.RelPath = "original.ts"

	g := newGraph([]graph.File{entry, forwarder, original}, map[graph.FileID][]graph.Edge{
		0: {namedImport(1, "value")},
		1: {{To: 2, Kind: graph.EdgeNamedReexport, Items: []jsast.ReexportItem{{SourceName: "value", ExposedName: "value"}}}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true, 2: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if len(report.UnusedExports) != 0 {
		t.Errorf("unusedExports = %+v, want none (value should be marked on original.ts)", report.UnusedExports)
	}
}

// TestNamespaceBurnsThroughStarReexports: a namespace import of a
// barrel marks every export of every star-reexported module used too.
func TestNamespaceBurnsThroughStarReexports(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	barrel := graph.File{RelPath: "barrel.ts", Facts: jsast.Empty()}
	a := fileWithExports("fromA")
	a.RelPath = "a.ts"
	b := fileWithExports("fromB")
	b.RelPath = "b.ts"

	g := newGraph([]graph.File{entry, barrel, a, b}, map[graph.FileID][]graph.Edge{
		0: {{To: 1, Kind: graph.EdgeNamespace}},
		1: {{To: 2, Kind: graph.EdgeStarReexport}, {To: 3, Kind: graph.EdgeStarReexport}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true, 2: true, 3: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if len(report.UnusedExports) != 0 {
		t.Errorf("unusedExports = %+v, want none", report.UnusedExports)
	}
}

// TestCyclicStarReexportTerminates guards the lazy re-export resolver
// against infinite recursion when two barrels re-export each other.
func TestCyclicStarReexportTerminates(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	a := graph.File{RelPath: "a.ts", Facts: jsast.Empty()}
	b := graph.File{RelPath: "b.ts", Facts: jsast.Empty()}

	g := newGraph([]graph.File{entry, a, b}, map[graph.FileID][]graph.Edge{
		0: {namedImport(1, "missing")},
		1: {{To: 2, Kind: graph.EdgeStarReexport}},
		2: {{To: 1, Kind: graph.EdgeStarReexport}},
	})

	reached := map[graph.FileID]bool{0: true, 1: true, 2: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)
	if len(report.UnusedExports) != 0 {
		t.Errorf("unusedExports = %+v, want none (a.ts and b.ts declare no exports)", report.UnusedExports)
	}
}

// TestUnreachableFileExportsNeverReported ensures a file not reached by
// any entry never contributes to unusedExports even if it has exports.
func TestUnreachableFileExportsNeverReported(t *testing.T) {
	entry := fileWithExports()
	entry.RelPath = "entry.ts"
	orphan := fileWithExports("neverSeen")
	orphan.RelPath = "orphan.ts"

	g := newGraph([]graph.File{entry, orphan}, nil)

	reached := map[graph.FileID]bool{0: true}
	used := Propagate(g, reached)
	report := BuildReport(g, reached, used)

	if len(report.UnusedExports) != 0 {
		t.Errorf("unusedExports = %+v, want none (orphan.ts is unreachable)", report.UnusedExports)
	}
}
