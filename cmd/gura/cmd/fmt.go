package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gura-conf/gura-go/gura"
	"github.com/spf13/cobra"
)

var writeInPlace bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reformat a Gura file into canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		value, err := gura.Load(string(content), filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		out, err := gura.Dump(value)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}
		out += "\n"

		if writeInPlace {
			return os.WriteFile(path, []byte(out), 0o644)
		}
		_, err = fmt.Fprint(os.Stdout, out)
		return err
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write the reformatted output back to the file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}
