// render/renderer.go

// Package render turns a resolved layout tree into draw calls. It defines
// the Surface capability that concrete back-ends implement, the Item kinds
// that bind drawable content to layout elements, and the Renderer that walks
// items, resolves their regions and draws them. Content alignment within a
// region uses the nine-point Anchor, independent of how elements position
// themselves in the tree.
package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/text"
)

// Renderer draws items onto a surface. The measurer is only needed for
// TextItems with FitToRegion set; a renderer built without one refuses
// those.
type Renderer struct {
	measurer text.Measurer
	logger   *zap.Logger
}

// NewRenderer builds a renderer. Either argument may be nil: a nil measurer
// disables fitted text, a nil logger silences logging.
func NewRenderer(measurer text.Measurer, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{measurer: measurer, logger: logger}
}

// Render draws every item in order onto the surface. Items later in the
// slice paint over earlier ones. The first failure stops the pass.
func (r *Renderer) Render(surface Surface, items []Item) error {
	if surface == nil {
		return layout.NewInvalidConfigError("cannot render onto a nil surface")
	}
	for i, item := range items {
		if err := r.renderItem(surface, item); err != nil {
			return fmt.Errorf("rendering item %d: %w", i, err)
		}
	}
	r.logger.Debug("render pass complete", zap.Int("items", len(items)))
	return nil
}

func (r *Renderer) renderItem(surface Surface, item Item) error {
	if item == nil || item.element() == nil {
		return layout.NewInvalidConfigError("item is not bound to an element")
	}
	region, err := item.element().GetAbsoluteRegion()
	if err != nil {
		return err
	}

	switch it := item.(type) {
	case *TextItem:
		return r.renderText(surface, it, region)

	case *RectItem:
		return surface.DrawRect(region, it.Style)

	case *LineItem:
		return surface.DrawLine(it.From.Point(region), it.To.Point(region), it.Stroke)

	case *ImageItem:
		if it.Image == nil {
			return layout.NewInvalidConfigError("image item has no image")
		}
		bounds := it.Image.Bounds()
		target := it.Mode.Apply(float64(bounds.Dx()), float64(bounds.Dy()), region, it.Anchor)
		return surface.DrawImage(target, it.Image)

	default:
		return layout.NewInvalidConfigError(fmt.Sprintf("unknown item kind %T", item))
	}
}

func (r *Renderer) renderText(surface Surface, it *TextItem, region layout.Region) error {
	font := it.Font
	if it.FitToRegion {
		if r.measurer == nil {
			return layout.NewInvalidConfigError("fitted text needs a renderer with a measurer")
		}
		minPt, maxPt := it.MinPoints, it.MaxPoints
		if minPt == 0 {
			minPt = text.MinFontPoints
		}
		if maxPt == 0 {
			maxPt = text.MaxFontPoints
		}
		bounds := layout.NewMeasure(layout.Px(region.Width()), layout.Px(region.Height()))
		dpi := it.Element.EffectiveDPI()
		size, err := text.GetMaxFontSizeBetween(r.measurer, it.Content, font, bounds, dpi, minPt, maxPt)
		if err != nil {
			return err
		}
		font = font.WithSize(size)
		r.logger.Debug("fitted text",
			zap.String("content", it.Content),
			zap.Float64("points", size),
			zap.Float64("dpi", dpi),
		)
	}
	return surface.DrawText(region, it.Content, font, it.Color, it.Anchor)
}
