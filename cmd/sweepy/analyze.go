package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"sweepy/internal/analyzer"
	"sweepy/internal/config"
	"sweepy/internal/output"
	"sweepy/internal/paths"
	"sweepy/internal/usage"
)

var (
	analyzeRoot       string
	analyzeEntries    []string
	analyzeConfigPath string
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report unused exports reachable from a set of entrypoints",
	Long: `analyze walks the import graph starting from --entry files and reports
every file it reaches plus every declared export on those files that
nothing reachable ever imports.

Examples:
  sweepy analyze --root . --entry src/index.ts
  sweepy analyze --root . --entry src/index.ts --entry src/admin.ts --json
  sweepy analyze --config sweepy.yaml`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRoot, "root", ".", "Project root directory")
	analyzeCmd.Flags().StringArrayVar(&analyzeEntries, "entry", nil, "Entry file (repeatable); defaults to every conventional entrypoint found under root")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to a sweepy config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the {reachableFiles, unusedExports} report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := newLogger()

	root, err := filepath.Abs(analyzeRoot)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	cfg := config.Default()
	if analyzeConfigPath != "" {
		cfg, err = config.Load(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	entries := resolveEntries(root, analyzeEntries)
	if len(entries) == 0 {
		return fmt.Errorf("no --entry given and no conventional entrypoint found under %s", root)
	}
	for _, e := range entries {
		if !paths.IsWithinRepo(e, root) {
			logger.Warn("entry falls outside root; it will be analyzed as a synthetic node", map[string]interface{}{"entry": e, "root": root})
		}
	}

	a := analyzer.New(logger)
	report, err := a.Analyze(newContext(), root, entries, cfg)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if analyzeJSON {
		data, err := output.DeterministicEncodeIndented(report, "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printHumanReport(report)
	}

	logger.Debug("analyze completed", map[string]interface{}{
		"reachableFiles": len(report.ReachableFiles),
		"unusedExports":  len(report.UnusedExports),
		"duration":       time.Since(start).Milliseconds(),
	})

	return nil
}

// resolveEntries turns CLI entry arguments into absolute paths, joining
// relative ones against root. When explicit is empty it falls back to
// the conventional entrypoints a JS/TS project typically exposes.
func resolveEntries(root string, explicit []string) []string {
	if len(explicit) > 0 {
		resolved := make([]string, 0, len(explicit))
		for _, e := range explicit {
			if filepath.IsAbs(e) {
				resolved = append(resolved, e)
			} else {
				resolved = append(resolved, filepath.Join(root, e))
			}
		}
		return resolved
	}
	return findDefaultEntrypoints(root)
}

// findDefaultEntrypoints tries src/index.{ts,tsx}, index.{ts,tsx}, then
// src/main.{ts,tsx} under root, in that order, and collects every one
// that exists — a project with both a src/index.ts and a src/main.ts
// gets both as entries, not just the first match. This is a CLI-only
// convenience: Analyze itself always requires at least one entry and
// never guesses on its own.
func findDefaultEntrypoints(root string) []string {
	candidates := []string{
		"src/index.ts", "src/index.tsx",
		"index.ts", "index.tsx",
		"src/main.ts", "src/main.tsx",
	}
	var found []string
	for _, rel := range candidates {
		abs := filepath.Join(root, rel)
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			found = append(found, abs)
		}
	}
	return found
}

func printHumanReport(report usage.Report) {
	fmt.Printf("reachable files: %d\n", len(report.ReachableFiles))
	if len(report.UnusedExports) == 0 {
		fmt.Println("unused exports: none")
		return
	}
	fmt.Printf("unused exports: %d\n", len(report.UnusedExports))
	for _, u := range report.UnusedExports {
		fmt.Printf("  %s  %s\n", u.File, u.Name)
	}
}
