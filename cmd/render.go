// File: cmd/render.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/formeset/platen/backend/canvaskit"
	"github.com/formeset/platen/dsl"
	"github.com/formeset/platen/internal/config"
	"github.com/formeset/platen/internal/observability"
	"github.com/formeset/platen/render"
)

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Renders a document to PDF or PNG",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so command-line values override
			// the config file and environment.
			if err := viper.BindPFlag("render.format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			if err := viper.BindPFlag("page.dpi", cmd.Flags().Lookup("dpi")); err != nil {
				return err
			}
			if err := viper.BindPFlag("render.workers", cmd.Flags().Lookup("workers")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Re-resolve the config so the flag bindings from PreRunE apply
			// with the right precedence.
			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			docPath := args[0]
			output := viper.GetString("output")
			if output == "" {
				output = replaceExt(docPath, "."+cfg.Render.Format)
			}

			jobID := uuid.New().String()
			jobLog := logger.Named("render").With(zap.String("jobID", jobID))
			jobLog.Info("Starting render job",
				zap.String("document", docPath),
				zap.String("output", output),
				zap.String("format", cfg.Render.Format),
				zap.Int("workers", cfg.Render.Workers),
			)

			build, err := loadDocument(docPath, cfg)
			if err != nil {
				return err
			}

			lib, err := openFontLibrary(cfg, jobLog)
			if err != nil {
				return err
			}

			doc, err := renderDocument(ctx, cfg, build, lib, jobLog)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					jobLog.Warn("Render aborted")
					return fmt.Errorf("render aborted by user signal")
				}
				return err
			}

			if err := writeOutput(doc, outputMeta(build.Meta, cfg), cfg.Render.Format, output); err != nil {
				return err
			}

			jobLog.Info("Render complete", zap.Int("pages", doc.PageCount()))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d page(s))\n", output, doc.PageCount())
			return nil
		},
	}

	renderCmd.Flags().StringP("output", "o", "", "Output file path. Defaults to the document path with the format's extension.")
	renderCmd.Flags().StringP("format", "f", "pdf", "Output format, 'pdf' or 'png'. (Overrides config/env)")
	renderCmd.Flags().Float64("dpi", 0, "Default page density for pages without a dpi attribute. (Overrides config/env)")
	renderCmd.Flags().Int("workers", 0, "Number of pages rendered concurrently. (Overrides config/env)")

	return renderCmd
}

// loadDocument parses and lowers a document with the configured page
// defaults applied. Relative image paths resolve against the document.
func loadDocument(path string, cfg *config.Config) (*dsl.BuildResult, error) {
	doc, err := dsl.ParseFile(path)
	if err != nil {
		return nil, err
	}
	margin, err := cfg.Page.MarginInset()
	if err != nil {
		return nil, err
	}
	return dsl.Build(doc,
		dsl.WithDefaultDPI(cfg.Page.DPI),
		dsl.WithDefaultPadding(margin),
		dsl.WithImageLoader(dsl.DirImageLoader(filepath.Dir(path))),
	)
}

// openFontLibrary builds the font library, folding in the configured font
// directory when one is set.
func openFontLibrary(cfg *config.Config, logger *zap.Logger) (*canvaskit.Library, error) {
	lib, err := canvaskit.NewLibrary()
	if err != nil {
		return nil, err
	}
	if cfg.Render.FontDir == "" {
		return lib, nil
	}
	dir, err := homedir.Expand(cfg.Render.FontDir)
	if err != nil {
		return nil, fmt.Errorf("resolving font directory: %w", err)
	}
	loaded, err := lib.RegisterDir(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded font directory", zap.String("dir", dir), zap.Int("files", len(loaded)))
	return lib, nil
}

// renderDocument draws every page of the build and collects them into a
// document. Surfaces are allocated up front in page order; the drawing
// itself fans out across the configured workers.
func renderDocument(ctx context.Context, cfg *config.Config, build *dsl.BuildResult, lib *canvaskit.Library, logger *zap.Logger) (*canvaskit.Document, error) {
	doc := canvaskit.NewDocument(lib, cfg.Page.DPI)
	renderer := render.NewRenderer(canvaskit.NewMeasurer(lib), logger)

	surfaces := make([]*canvaskit.Surface, len(build.Pages))
	for i, p := range build.Pages {
		region, err := p.Element.GetAbsoluteRegion()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		surf, err := doc.AddPage(region.Width(), region.Height(), p.Element.DPI())
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		surfaces[i] = surf
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Render.Workers)
	for i := range build.Pages {
		i := i
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if err := renderer.Render(surfaces[i], build.Pages[i].Items); err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			logger.Debug("Rendered page", zap.Int("page", i+1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

// outputMeta folds the configured creator into the document's own meta.
func outputMeta(meta dsl.Meta, cfg *config.Config) canvaskit.Meta {
	out := canvaskit.Meta{
		Title:    meta.Title,
		Subject:  meta.Subject,
		Keywords: meta.Keywords,
		Author:   meta.Author,
		Creator:  meta.Creator,
	}
	if out.Creator == "" {
		out.Creator = cfg.Render.Creator
	}
	return out
}

// writeOutput serializes the document: one PDF file, or one PNG per page
// with a -N suffix when the document has more than one.
func writeOutput(doc *canvaskit.Document, meta canvaskit.Meta, format, path string) error {
	switch format {
	case "pdf":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := doc.WritePDF(f, meta); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case "png":
		if doc.PageCount() == 1 {
			return writePNGFile(doc, 0, path)
		}
		ext := filepath.Ext(path)
		stem := strings.TrimSuffix(path, ext)
		for i := 0; i < doc.PageCount(); i++ {
			if err := writePNGFile(doc, i, fmt.Sprintf("%s-%d%s", stem, i+1, ext)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render.format must be \"pdf\" or \"png\", got %q", format)
	}
}

func writePNGFile(doc *canvaskit.Document, index int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.WritePNG(f, index); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// replaceExt swaps the extension of path for ext, which carries its dot.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
