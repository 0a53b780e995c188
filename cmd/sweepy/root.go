package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sweepy/internal/logging"
	"sweepy/internal/version"
)

var logFormat string

var rootCmd = &cobra.Command{
	Use:     "sweepy",
	Short:   "sweepy finds unused exports across a JS/TS/Vue module graph",
	Long:    `sweepy resolves import specifiers, builds a module graph from a set of entrypoints, and reports which declared exports are never used by anything reachable from them.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("sweepy version %s\n", version.Info()))
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "human", "Log output format (human, json)")
}

func newLogger() *logging.Logger {
	format := logging.HumanFormat
	if logFormat == "json" {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.InfoLevel,
	})
}

func newContext() context.Context {
	return context.Background()
}
