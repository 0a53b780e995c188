package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sweepy/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Long:  `version prints the full build identity (version, commit, build date) rather than the short string the --version flag prints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
