// File: cmd/fonts.go
package cmd

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/formeset/platen/backend/canvaskit"
)

// newFontsCmd creates the `fonts` command, which reports the families a
// document can name: the embedded fallback plus everything discovered in
// the configured font directory.
func newFontsCmd() *cobra.Command {
	fontsCmd := &cobra.Command{
		Use:   "fonts",
		Short: "Lists the font families available to documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := activeConfig()

			lib, err := canvaskit.NewLibrary()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Render.FontDir != "" {
				dir, err := homedir.Expand(cfg.Render.FontDir)
				if err != nil {
					return fmt.Errorf("resolving font directory: %w", err)
				}
				files, err := lib.RegisterDir(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Font directory: %s (%d file(s))\n", dir, len(files))
				for _, f := range files {
					fmt.Fprintf(out, "  %s\n", f)
				}
			}

			fmt.Fprintln(out, "Families:")
			for _, family := range lib.Families() {
				fmt.Fprintf(out, "  %s\n", family)
			}
			return nil
		},
	}
	return fontsCmd
}
