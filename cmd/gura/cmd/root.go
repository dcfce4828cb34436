package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "gura",
	Short:        "gura",
	SilenceUsage: true,
	Long:         `Command-line tooling for the Gura configuration format: formatting and syntax checking.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
