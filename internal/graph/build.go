package graph

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"

	"sweepy/internal/jsast"
	"sweepy/internal/resolver"
)

// SourceFile is one file discovered on disk, ready to be assigned a
// FileID and parsed.
type SourceFile struct {
	RelPath string
	AbsPath string
}

// parseResult pairs a worker's output with the index of the SourceFile
// it parsed, so results can be placed back in FileID order regardless
// of which worker finished first.
type parseResult struct {
	index int
	facts *jsast.ModuleFacts
	hash  string
	err   error
}

// ParseErrorFunc is invoked once per file that failed to read or parse.
// A nil func discards the errors; the file still receives empty facts
// and remains part of the graph.
type ParseErrorFunc func(relPath string, err error)

// UnresolvedFunc is invoked once per import or re-export specifier that
// could not be resolved to a file on disk. A nil func discards these;
// the binding fact itself is untouched either way.
type UnresolvedFunc func(fromRelPath, specifier string)

// BuildOptions controls Build's worker pool size and the optional
// callbacks used to surface per-file and per-specifier problems to a
// caller's logger without making them fail the build.
type BuildOptions struct {
	Workers      int
	OnParseError ParseErrorFunc
	OnUnresolved UnresolvedFunc
}

// Build assigns FileIDs to files in lexicographic rel-path order,
// parses them across a bounded worker pool, then resolves every import
// and re-export specifier into graph edges single-threaded. Ordering
// guarantees hold only for the final FileID assignment and edge lists;
// parse order itself is unconstrained.
func Build(ctx context.Context, files []SourceFile, res *resolver.Resolver, opts BuildOptions) (*ProjectGraph, error) {
	sorted := make([]SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	parsed := make([]parseResult, len(sorted))
	if err := parseAll(ctx, sorted, opts.Workers, parsed, opts.OnParseError); err != nil {
		return nil, err
	}

	g := &ProjectGraph{
		Edges:  make(map[FileID][]Edge),
		ByPath: make(map[string]FileID, len(sorted)),
	}
	for i, sf := range sorted {
		id := FileID(i)
		g.Files = append(g.Files, File{
			RelPath:     sf.RelPath,
			AbsPath:     sf.AbsPath,
			Facts:       parsed[i].facts,
			ContentHash: parsed[i].hash,
		})
		g.ByPath[sf.RelPath] = id
	}

	byAbsPath := make(map[string]FileID, len(g.Files))
	for i, f := range g.Files {
		byAbsPath[f.AbsPath] = FileID(i)
	}

	for i := range g.Files {
		linkFile(g, FileID(i), res, byAbsPath, opts.OnUnresolved)
	}

	return g, nil
}

func parseAll(ctx context.Context, sorted []SourceFile, workers int, out []parseResult, onParseError ParseErrorFunc) error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(sorted) {
		workers = len(sorted)
	}
	if workers == 0 {
		return nil
	}

	work := make(chan int, len(sorted))
	for i := range sorted {
		work <- i
	}
	close(work)

	results := make(chan parseResult, len(sorted))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				facts, hash, err := parseOne(ctx, sorted[idx])
				results <- parseResult{index: idx, facts: facts, hash: hash, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		out[res.index] = res
		if res.err != nil && onParseError != nil {
			onParseError(sorted[res.index].RelPath, res.err)
		}
	}
	return nil
}

func parseOne(ctx context.Context, sf SourceFile) (*jsast.ModuleFacts, string, error) {
	source, err := os.ReadFile(sf.AbsPath)
	if err != nil {
		return jsast.Empty(), "", err
	}
	hash := blake2b.Sum256(source)
	facts, err := jsast.Parse(ctx, source, filepath.Ext(sf.AbsPath))
	if err != nil {
		return jsast.Empty(), hex.EncodeToString(hash[:]), err
	}
	return facts, hex.EncodeToString(hash[:]), nil
}

// linkFile resolves every import and re-export specifier in file id's
// facts and appends the resulting edges. Unresolved specifiers (bare,
// or pointing at nothing on disk) are silently dropped from the graph;
// the binding fact itself is untouched.
func linkFile(g *ProjectGraph, id FileID, res *resolver.Resolver, byAbsPath map[string]FileID, onUnresolved UnresolvedFunc) {
	f := g.Files[id]
	if f.Facts == nil {
		return
	}

	resolveTo := func(specifier string) (FileID, bool) {
		abs, ok := res.Resolve(f.AbsPath, specifier)
		if !ok {
			return 0, false
		}
		to, ok := byAbsPath[abs]
		return to, ok
	}

	for _, imp := range f.Facts.Imports {
		if imp.Specifier == "" {
			continue
		}
		to, ok := resolveTo(imp.Specifier)
		if !ok {
			if onUnresolved != nil {
				onUnresolved(f.RelPath, imp.Specifier)
			}
			continue
		}
		switch imp.Kind {
		case jsast.BindingNamed:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeNamed, Named: imp.Named})
		case jsast.BindingDefault:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeDefault})
		case jsast.BindingNamespace:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeNamespace})
		case jsast.BindingSideEffect:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeSideEffect})
		}
	}

	for _, rex := range f.Facts.Reexports {
		to, ok := resolveTo(rex.Specifier)
		if !ok {
			if onUnresolved != nil {
				onUnresolved(f.RelPath, rex.Specifier)
			}
			continue
		}
		switch rex.Kind {
		case jsast.ReexportStar:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeStarReexport})
		case jsast.ReexportNamed:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeNamedReexport, Items: rex.Items})
		case jsast.ReexportNamespace:
			g.Edges[id] = append(g.Edges[id], Edge{To: to, Kind: EdgeNamespaceReexport, Exposed: rex.ExposedName})
		}
	}
}
