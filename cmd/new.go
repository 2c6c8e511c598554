// File: cmd/new.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/formeset/platen/internal/observability"
)

// starterDocument is the scaffold written by `platen new`, filled in from
// the configured page defaults.
const starterDocument = `meta {
  title: "Untitled"
}

page %s %s dpi %g {
  text "Hello from platen"
}
`

// newNewCmd creates the `new` command.
func newNewCmd() *cobra.Command {
	newCmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Writes a starter document using the configured page defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := activeConfig()

			path := "document.platen"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			content := fmt.Sprintf(starterDocument, cfg.Page.Width, cfg.Page.Height, cfg.Page.DPI)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}

			observability.GetLogger().Info("Wrote starter document", zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	return newCmd
}
