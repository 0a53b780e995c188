// Package analyzer orchestrates the full pipeline — discovery, parsing,
// graph building, reachability, and usage propagation — behind the one
// public Analyze call.
package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"sweepy/internal/config"
	"sweepy/internal/discovery"
	"sweepy/internal/errs"
	"sweepy/internal/graph"
	"sweepy/internal/logging"
	"sweepy/internal/paths"
	"sweepy/internal/reachability"
	"sweepy/internal/resolver"
	"sweepy/internal/usage"
)

// Analyzer runs the pipeline. The zero value is ready to use; Workers
// defaults to runtime.NumCPU() and Logger defaults to a logger that
// discards everything.
type Analyzer struct {
	Logger  *logging.Logger
	Workers int
}

// New returns an Analyzer that logs through logger. A nil logger
// discards all output.
func New(logger *logging.Logger) *Analyzer {
	return &Analyzer{Logger: logger}
}

func (a *Analyzer) logger() *logging.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return logging.Nop()
}

func (a *Analyzer) workers() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.NumCPU()
}

// Analyze validates root and entries, discovers project files, parses
// and links them into a graph, walks reachability from entries, and
// propagates export usage into a final Report. cfg may be nil, which
// behaves as config.Default().
//
// entries are absolute file paths. It fails only with an *errs.Error
// when root is not a directory or entries is empty — every other
// failure (a file that won't parse, a specifier that won't resolve) is
// absorbed into the report.
func (a *Analyzer) Analyze(ctx context.Context, root string, entries []string, cfg *config.Config) (usage.Report, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return usage.Report{}, errs.ErrInvalidRoot(root, err)
	}
	if len(entries) == 0 {
		return usage.Report{}, errs.ErrNoEntries()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	runID := uuid.NewString()
	log := a.logger().With(map[string]interface{}{"runID": runID})
	log.Info("analyze started", map[string]interface{}{"root": root, "entries": len(entries)})

	canonicalRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		canonicalRoot = filepath.Clean(root)
	}

	files, err := discovery.Walk(canonicalRoot, cfg.ExtraSourceRoots, cfg.ResolvedExtensions(), cfg.ResolvedIgnoreDirs())
	if err != nil {
		log.Warn("discovery encountered an error, continuing with files found so far", map[string]interface{}{
			"error": err.Error(),
		})
	}
	log.Debug("discovery complete", map[string]interface{}{"files": len(files)})

	res := resolver.New(canonicalRoot, cfg)

	g, err := graph.Build(ctx, files, res, graph.BuildOptions{
		Workers: a.workers(),
		OnParseError: func(relPath string, parseErr error) {
			log.Debug("skipping file: parse error", map[string]interface{}{"file": relPath, "error": parseErr.Error()})
		},
		OnUnresolved: func(fromRelPath, specifier string) {
			log.Debug("unresolved specifier", map[string]interface{}{"file": fromRelPath, "specifier": specifier})
		},
	})
	if err != nil {
		return usage.Report{}, err
	}

	entryIDs := make([]graph.FileID, 0, len(entries))
	for _, entry := range entries {
		entryIDs = append(entryIDs, entryFileID(g, canonicalRoot, entry))
	}

	reached := reachability.Walk(g, entryIDs)
	used := usage.Propagate(g, reached)
	report := usage.BuildReport(g, reached, used)

	log.Info("analyze finished", map[string]interface{}{
		"reachableFiles": len(report.ReachableFiles),
		"unusedExports":  len(report.UnusedExports),
	})

	return report, nil
}

// entryFileID maps an absolute entry path to the FileID discovery
// already assigned it, or registers a synthetic node for an entry
// outside the discovered tree.
func entryFileID(g *graph.ProjectGraph, root, entry string) graph.FileID {
	abs := entry
	if resolved, err := filepath.EvalSymlinks(entry); err == nil {
		abs = resolved
	}
	abs = filepath.Clean(abs)

	rel, err := paths.CanonicalizePath(abs, root)
	if err != nil {
		rel = paths.NormalizePath(abs)
	}

	if id, ok := g.ByPath[rel]; ok {
		return id
	}
	return g.AddSynthetic(rel, abs)
}
