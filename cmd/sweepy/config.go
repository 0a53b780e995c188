package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sweepy/internal/config"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sweepy configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long:  "Writes a starter sweepy.yaml with the default alias table, extensions, and ignore directories.",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "sweepy.yaml", "Path to write the config file")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configInitPath); err == nil && !configInitForce {
		fmt.Printf("%s already exists. Run with --force to overwrite.\n", configInitPath)
		return nil
	}

	if err := config.WriteDefault(configInitPath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote default config to %s\n", configInitPath)
	return nil
}
