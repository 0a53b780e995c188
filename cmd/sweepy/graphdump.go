package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"sweepy/internal/config"
	"sweepy/internal/discovery"
	"sweepy/internal/graph"
	"sweepy/internal/paths"
	"sweepy/internal/resolver"
)

var (
	graphDumpRoot       string
	graphDumpEntries    []string
	graphDumpConfigPath string
	graphDumpGzip       bool
	graphDumpOut        string
)

var graphDumpCmd = &cobra.Command{
	Use:   "graph-dump",
	Short: "Dump the parsed module graph as JSON for offline inspection",
	Long: `graph-dump runs discovery, parsing, and specifier resolution and writes the
resulting module graph as JSON. It is diagnostic-only: sweepy never reads
this output back, so nothing about a later analyze run depends on it.`,
	RunE: runGraphDump,
}

func init() {
	graphDumpCmd.Flags().StringVar(&graphDumpRoot, "root", ".", "Project root directory")
	graphDumpCmd.Flags().StringArrayVar(&graphDumpEntries, "entry", nil, "Entry file (repeatable); defaults to every conventional entrypoint found under root")
	graphDumpCmd.Flags().StringVar(&graphDumpConfigPath, "config", "", "Path to a sweepy config file")
	graphDumpCmd.Flags().BoolVar(&graphDumpGzip, "gzip", false, "Gzip-compress the output")
	graphDumpCmd.Flags().StringVar(&graphDumpOut, "out", "", "Write to this path instead of stdout")
	rootCmd.AddCommand(graphDumpCmd)
}

// fileDump and edgeDump mirror graph.File/graph.Edge but replace the
// FileID-keyed edge map with a plain slice so the output is ordinary
// JSON regardless of which map-key types the graph package uses
// internally.
type fileDump struct {
	ID          int        `json:"id"`
	RelPath     string     `json:"relPath"`
	ContentHash string     `json:"contentHash,omitempty"`
	Edges       []edgeDump `json:"edges"`
}

type edgeDump struct {
	To      int    `json:"to"`
	Kind    string `json:"kind"`
	Exposed string `json:"exposed,omitempty"`
}

func runGraphDump(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	root, err := filepath.Abs(graphDumpRoot)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	cfg := config.Default()
	if graphDumpConfigPath != "" {
		cfg, err = config.Load(graphDumpConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	entries := resolveEntries(root, graphDumpEntries)
	if len(entries) == 0 {
		return fmt.Errorf("no --entry given and no conventional entrypoint found under %s", root)
	}
	for _, e := range entries {
		if !paths.IsWithinRepo(e, root) {
			logger.Warn("entry falls outside root; it will be analyzed as a synthetic node", map[string]interface{}{"entry": e, "root": root})
		}
	}

	files, err := discovery.Walk(root, cfg.ExtraSourceRoots, cfg.ResolvedExtensions(), cfg.ResolvedIgnoreDirs())
	if err != nil {
		logger.Warn("discovery encountered an error, continuing with files found so far", map[string]interface{}{"error": err.Error()})
	}

	res := resolver.New(root, cfg)
	g, err := graph.Build(newContext(), files, res, graph.BuildOptions{
		OnParseError: func(relPath string, parseErr error) {
			logger.Debug("skipping file: parse error", map[string]interface{}{"file": relPath, "error": parseErr.Error()})
		},
		OnUnresolved: func(fromRelPath, specifier string) {
			logger.Debug("unresolved specifier", map[string]interface{}{"file": fromRelPath, "specifier": specifier})
		},
	})
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	for _, entry := range entries {
		registerSyntheticEntry(g, root, entry)
	}

	dump := make([]fileDump, len(g.Files))
	for id, f := range g.Files {
		fd := fileDump{ID: id, RelPath: f.RelPath, ContentHash: f.ContentHash}
		for _, e := range g.Edges[graph.FileID(id)] {
			fd.Edges = append(fd.Edges, edgeDump{To: int(e.To), Kind: string(e.Kind), Exposed: e.Exposed})
		}
		dump[id] = fd
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}

	return writeGraphDump(data)
}

// registerSyntheticEntry mirrors internal/analyzer's handling of entries
// that fall outside the discovered tree.
func registerSyntheticEntry(g *graph.ProjectGraph, root, entry string) {
	abs := entry
	if resolved, err := filepath.EvalSymlinks(entry); err == nil {
		abs = resolved
	}
	abs = filepath.Clean(abs)

	rel, err := paths.CanonicalizePath(abs, root)
	if err != nil {
		rel = paths.NormalizePath(abs)
	}

	if _, ok := g.ByPath[rel]; ok {
		return
	}
	g.AddSynthetic(rel, abs)
}

func writeGraphDump(data []byte) error {
	var w io.Writer = os.Stdout
	if graphDumpOut != "" {
		f, err := os.Create(graphDumpOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if !graphDumpGzip {
		_, err := w.Write(data)
		if err == nil && graphDumpOut == "" {
			fmt.Println()
		}
		return err
	}

	gw := gzip.NewWriter(w)
	if _, err := gw.Write(data); err != nil {
		return err
	}
	return gw.Close()
}
