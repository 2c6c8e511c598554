// render/item.go
package render

import (
	"image"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/text"
)

// Item is one drawable bound to a layout element. The renderer resolves the
// element's absolute region and then draws the item's content into it.
type Item interface {
	element() *layout.Element
}

// TextItem draws a single line of text anchored in its element's region.
// With FitToRegion set, the font size is chosen by the fitting search over
// [MinPoints, MaxPoints] (or the package defaults when zero) so the text
// fills the region as far as it can.
type TextItem struct {
	Element     *layout.Element
	Content     string
	Font        text.Font
	Color       Color
	Anchor      Anchor
	FitToRegion bool
	MinPoints   float64
	MaxPoints   float64
}

func (it *TextItem) element() *layout.Element { return it.Element }

// RectItem paints its element's region.
type RectItem struct {
	Element *layout.Element
	Style   RectStyle
}

func (it *RectItem) element() *layout.Element { return it.Element }

// LineItem draws a segment between two anchor points of its element's
// region, e.g. AnchorTopLeft to AnchorTopRight for a rule along the top.
type LineItem struct {
	Element *layout.Element
	From    Anchor
	To      Anchor
	Stroke  Stroke
}

func (it *LineItem) element() *layout.Element { return it.Element }

// ImageItem draws an image scaled into its element's region.
type ImageItem struct {
	Element *layout.Element
	Image   image.Image
	Mode    ScaleMode
	Anchor  Anchor
}

func (it *ImageItem) element() *layout.Element { return it.Element }
