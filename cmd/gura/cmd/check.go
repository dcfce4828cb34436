package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gura-conf/gura-go/gura"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a Gura file for syntax errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if _, err := gura.Load(string(content), filepath.Dir(path)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			cmd.SilenceErrors = true
			return fmt.Errorf("%s is not valid Gura", path)
		}

		fmt.Fprintf(os.Stdout, "%s is valid Gura\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
