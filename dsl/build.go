// dsl/build.go
package dsl

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/render"
	"github.com/formeset/platen/text"
)

// DefaultFontPoints is the text size used when a statement sets none.
const DefaultFontPoints = 12.0

// Meta is the document information block of a built document.
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// Page is one lowered page: the root of its element tree and the draw
// items bound to elements of that tree, in document order. Document order
// is the paint order.
type Page struct {
	Element *layout.Element
	Items   []render.Item
}

// BuildResult is a lowered document ready for rendering.
type BuildResult struct {
	Meta  Meta
	Pages []*Page
}

// ImageLoader resolves an image path referenced by a document.
type ImageLoader func(path string) (image.Image, error)

// DirImageLoader returns a loader that resolves relative paths against dir,
// so image references travel with the document that names them.
func DirImageLoader(dir string) ImageLoader {
	return func(path string) (image.Image, error) {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return loadImageFile(path)
	}
}

// BuildOption configures Build.
type BuildOption func(*builder)

// WithImageLoader replaces the default loader, which reads paths from the
// file system as-is. Callers use it to resolve paths relative to the
// document's own directory.
func WithImageLoader(load ImageLoader) BuildOption {
	return func(b *builder) { b.loadImage = load }
}

// WithDefaultDPI sets the density for pages that carry no dpi attribute of
// their own. Non-positive values are ignored.
func WithDefaultDPI(dpi float64) BuildOption {
	return func(b *builder) { b.defaultDPI = dpi }
}

// WithDefaultPadding pads every page body before its statements run, so an
// explicit pad statement still overrides it.
func WithDefaultPadding(inset layout.Inset) BuildOption {
	return func(b *builder) {
		padding := inset
		b.defaultPadding = &padding
	}
}

type builder struct {
	loadImage      ImageLoader
	defaultDPI     float64
	defaultPadding *layout.Inset
}

// Build lowers a parsed document onto the layout and render model: every
// page becomes a root element, every box and grid a subtree, and every
// draw statement an item bound to the element it appeared under.
func Build(doc *Document, opts ...BuildOption) (*BuildResult, error) {
	b := &builder{loadImage: loadImageFile}
	for _, opt := range opts {
		opt(b)
	}

	result := &BuildResult{}
	if doc.Meta != nil {
		meta, err := buildMeta(doc.Meta)
		if err != nil {
			return nil, err
		}
		result.Meta = meta
	}
	for _, node := range doc.Pages {
		page, err := b.buildPage(node)
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, page)
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("%s: document has no pages", doc.Pos)
	}
	return result, nil
}

func buildMeta(node *MetaNode) (Meta, error) {
	var meta Meta
	for _, entry := range node.Entries {
		value := string(entry.Value)
		switch strings.ToLower(entry.Key) {
		case "title":
			meta.Title = value
		case "subject":
			meta.Subject = value
		case "author":
			meta.Author = value
		case "creator":
			meta.Creator = value
		case "keywords":
			for _, kw := range strings.Split(value, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					meta.Keywords = append(meta.Keywords, kw)
				}
			}
		default:
			return Meta{}, fmt.Errorf("%s: unknown meta key %q", entry.Pos, entry.Key)
		}
	}
	return meta, nil
}

func (b *builder) buildPage(node *PageNode) (*Page, error) {
	width, err := pageLength(node.Pos, node.Width)
	if err != nil {
		return nil, err
	}
	height, err := pageLength(node.Pos, node.Height)
	if err != nil {
		return nil, err
	}

	root := layout.NewElement()
	root.SetSize(layout.NewMeasure(width, height))
	if b.defaultPadding != nil {
		root.SetPadding(*b.defaultPadding)
	}
	if node.DPI != nil {
		if *node.DPI <= 0 {
			return nil, fmt.Errorf("%s: page dpi must be positive", node.Pos)
		}
		root.SetDPI(*node.DPI)
	} else if b.defaultDPI > 0 {
		root.SetDPI(b.defaultDPI)
	}

	page := &Page{Element: root}
	if err := b.buildBlock(root, node.Block, page); err != nil {
		return nil, err
	}
	return page, nil
}

// pageLength parses a page dimension. Percentages are rejected: a page has
// no parent to take a percentage of.
func pageLength(pos lexer.Position, literal string) (layout.Length, error) {
	length, err := layout.ParseLength(literal)
	if err != nil {
		return layout.Length{}, fmt.Errorf("%s: %w", pos, err)
	}
	if length.Unit == layout.UnitPercent {
		return layout.Length{}, fmt.Errorf("%s: page dimensions cannot be percentages", pos)
	}
	return length, nil
}

func (b *builder) buildBlock(el *layout.Element, block *Block, page *Page) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		var err error
		switch {
		case stmt.Pad != nil:
			err = applyPad(el, stmt.Pad)
		case stmt.Box != nil:
			err = b.buildBox(el, stmt.Box, page)
		case stmt.Grid != nil:
			err = b.buildGrid(el, stmt.Grid, page)
		case stmt.Text != nil:
			err = buildText(el, stmt.Text, page)
		case stmt.Rect != nil:
			err = buildRect(el, stmt.Rect, page)
		case stmt.Line != nil:
			err = buildLine(el, stmt.Line, page)
		case stmt.Image != nil:
			err = b.buildImage(el, stmt.Image, page)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyPad(el *layout.Element, node *PadNode) error {
	inset, err := insetFromValues(node.Pos, node.Values)
	if err != nil {
		return err
	}
	el.SetPadding(inset)
	return nil
}

func (b *builder) buildBox(parent *layout.Element, node *BoxNode, page *Page) error {
	child := layout.NewElement()
	if err := applyBoxAttrs(child, node.Attrs); err != nil {
		return err
	}
	if err := parent.AddChild(child); err != nil {
		return fmt.Errorf("%s: %w", node.Pos, err)
	}
	return b.buildBlock(child, node.Block, page)
}

func applyBoxAttrs(el *layout.Element, attrs []*BoxAttr) error {
	for _, attr := range attrs {
		switch {
		case attr.At != nil:
			alignment, err := alignmentByName(attr.Pos, *attr.At)
			if err != nil {
				return err
			}
			el.SetAlignment(alignment)
		case attr.Fill:
			el.SetAlignment(layout.AlignFill)
		case attr.Size != nil:
			w, err := parseLengthAt(attr.Pos, attr.Size.First)
			if err != nil {
				return err
			}
			h, err := parseLengthAt(attr.Pos, attr.Size.Second)
			if err != nil {
				return err
			}
			el.SetSize(layout.NewMeasure(w, h))
		case attr.Margin != nil:
			inset, err := insetFromValues(attr.Pos, attr.Margin.Values)
			if err != nil {
				return err
			}
			el.SetMargin(inset)
		case attr.DPI != nil:
			if *attr.DPI <= 0 {
				return fmt.Errorf("%s: dpi must be positive", attr.Pos)
			}
			el.SetDPI(*attr.DPI)
		}
	}
	return nil
}

func (b *builder) buildGrid(parent *layout.Element, node *GridNode, page *Page) error {
	grid, err := layout.NewGrid(node.Rows, node.Columns)
	if err != nil {
		return fmt.Errorf("%s: %w", node.Pos, err)
	}

	container := grid.Element()
	container.SetAlignment(layout.AlignFill)
	if err := applyBoxAttrs(container, node.Attrs); err != nil {
		return err
	}
	if err := parent.AddChild(container); err != nil {
		return fmt.Errorf("%s: %w", node.Pos, err)
	}

	for _, entry := range node.Block.Entries {
		switch {
		case entry.Cell != nil:
			cell, err := grid.Cell(entry.Cell.Row, entry.Cell.Col)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Cell.Pos, err)
			}
			if err := b.buildBlock(cell, entry.Cell.Block, page); err != nil {
				return err
			}
		case entry.Span != nil:
			span, err := grid.Span(entry.Span.Row, entry.Span.Col, entry.Span.RowSpan, entry.Span.ColSpan)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Span.Pos, err)
			}
			if err := b.buildBlock(span, entry.Span.Block, page); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildText(el *layout.Element, node *TextNode, page *Page) error {
	item := &render.TextItem{
		Element: el,
		Content: string(node.Content),
		Font:    text.Font{SizePoints: DefaultFontPoints},
		Color:   render.Color{A: 255},
		Anchor:  render.AnchorCenter,
	}

	for _, attr := range node.Attrs {
		switch {
		case attr.Font != nil:
			item.Font.Family = string(attr.Font.Family)
			if attr.Font.Size != nil {
				points, err := parsePoints(attr.Pos, *attr.Font.Size)
				if err != nil {
					return err
				}
				item.Font.SizePoints = points
			}
		case attr.Style != nil:
			applyTextStyle(item, *attr.Style)
		case attr.Color != nil:
			col, err := parseColorAt(attr.Pos, *attr.Color)
			if err != nil {
				return err
			}
			item.Color = col
		case attr.Anchor != nil:
			anchor, err := anchorByName(attr.Pos, *attr.Anchor)
			if err != nil {
				return err
			}
			item.Anchor = anchor
		case attr.Fit != nil:
			item.FitToRegion = true
			if attr.Fit.Range != nil {
				minPt, err := parsePoints(attr.Pos, attr.Fit.Range.First)
				if err != nil {
					return err
				}
				maxPt, err := parsePoints(attr.Pos, attr.Fit.Range.Second)
				if err != nil {
					return err
				}
				item.MinPoints, item.MaxPoints = minPt, maxPt
			}
		}
	}

	page.Items = append(page.Items, item)
	return nil
}

func applyTextStyle(item *render.TextItem, keyword string) {
	switch keyword {
	case "bold":
		item.Font.Weight = text.WeightBold
	case "light":
		item.Font.Weight = text.WeightLight
	case "medium":
		item.Font.Weight = text.WeightMedium
	case "semibold":
		item.Font.Weight = text.WeightSemiBold
	case "extrabold":
		item.Font.Weight = text.WeightExtraBold
	case "black":
		item.Font.Weight = text.WeightBlack
	case "italic":
		item.Font.Style |= text.StyleItalic
	case "underline":
		item.Font.Style |= text.StyleUnderline
	case "strikethrough":
		item.Font.Style |= text.StyleStrikethrough
	case "overline":
		item.Font.Style |= text.StyleOverline
	}
}

func buildRect(el *layout.Element, node *RectNode, page *Page) error {
	item := &render.RectItem{Element: el}

	for _, attr := range node.Attrs {
		switch {
		case attr.Fill != nil:
			col, err := parseColorAt(attr.Pos, *attr.Fill)
			if err != nil {
				return err
			}
			item.Style.Fill = &col
		case attr.Stroke != nil:
			col, err := parseColorAt(attr.Pos, attr.Stroke.Color)
			if err != nil {
				return err
			}
			width := 1.0
			if attr.Stroke.Width != nil {
				width, err = pixelValueAt(attr.Pos, *attr.Stroke.Width)
				if err != nil {
					return err
				}
			}
			item.Style.Stroke = &render.Stroke{Color: col, Width: width}
		}
	}

	// A bare rect outlines its element, which makes boxes visible while a
	// document is being worked on.
	if item.Style.Fill == nil && item.Style.Stroke == nil {
		item.Style.Stroke = &render.Stroke{Color: render.Color{A: 255}, Width: 1}
	}

	page.Items = append(page.Items, item)
	return nil
}

func buildLine(el *layout.Element, node *LineNode, page *Page) error {
	from, err := anchorByName(node.Pos, node.From)
	if err != nil {
		return err
	}
	to, err := anchorByName(node.Pos, node.To)
	if err != nil {
		return err
	}

	stroke := render.Stroke{Color: render.Color{A: 255}, Width: 1}
	for _, attr := range node.Attrs {
		switch {
		case attr.Color != nil:
			stroke.Color, err = parseColorAt(attr.Pos, *attr.Color)
			if err != nil {
				return err
			}
		case attr.Width != nil:
			stroke.Width, err = pixelValueAt(attr.Pos, *attr.Width)
			if err != nil {
				return err
			}
		}
	}

	page.Items = append(page.Items, &render.LineItem{Element: el, From: from, To: to, Stroke: stroke})
	return nil
}

func (b *builder) buildImage(el *layout.Element, node *ImageNode, page *Page) error {
	img, err := b.loadImage(string(node.Path))
	if err != nil {
		return fmt.Errorf("%s: loading image %q: %w", node.Pos, string(node.Path), err)
	}

	item := &render.ImageItem{
		Element: el,
		Image:   img,
		Mode:    render.ScaleFit,
		Anchor:  render.AnchorCenter,
	}
	for _, attr := range node.Attrs {
		switch {
		case attr.Mode != nil:
			switch *attr.Mode {
			case "cover":
				item.Mode = render.ScaleCover
			case "stretch":
				item.Mode = render.ScaleStretch
			default:
				item.Mode = render.ScaleFit
			}
		case attr.Anchor != nil:
			item.Anchor, err = anchorByName(attr.Pos, *attr.Anchor)
			if err != nil {
				return err
			}
		}
	}

	page.Items = append(page.Items, item)
	return nil
}

// -- Literal Helpers --

func parseLengthAt(pos lexer.Position, literal string) (layout.Length, error) {
	length, err := layout.ParseLength(literal)
	if err != nil {
		return layout.Length{}, fmt.Errorf("%s: %w", pos, err)
	}
	return length, nil
}

func insetFromValues(pos lexer.Position, values []string) (layout.Inset, error) {
	lengths := make([]layout.Length, 0, len(values))
	for _, v := range values {
		length, err := parseLengthAt(pos, v)
		if err != nil {
			return layout.Inset{}, err
		}
		lengths = append(lengths, length)
	}
	switch len(lengths) {
	case 1:
		return layout.UniformInset(lengths[0]), nil
	case 4:
		return layout.NewInset(lengths[0], lengths[1], lengths[2], lengths[3]), nil
	default:
		return layout.Inset{}, fmt.Errorf("%s: an inset takes one or four lengths, got %d", pos, len(lengths))
	}
}

// parsePoints reads a font size: a bare number or one with a pt suffix.
func parsePoints(pos lexer.Position, literal string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(literal), "pt")
	points, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: font sizes are point values, got %q", pos, literal)
	}
	if points <= 0 {
		return 0, fmt.Errorf("%s: font sizes must be positive, got %q", pos, literal)
	}
	return points, nil
}

// pixelValueAt reads a stroke width: a bare number or one with a px suffix.
func pixelValueAt(pos lexer.Position, literal string) (float64, error) {
	length, err := parseLengthAt(pos, literal)
	if err != nil {
		return 0, err
	}
	if length.Unit != layout.UnitPixel {
		return 0, fmt.Errorf("%s: stroke widths take pixel values, got %q", pos, literal)
	}
	if length.Value < 0 {
		return 0, fmt.Errorf("%s: stroke widths cannot be negative, got %q", pos, literal)
	}
	return length.Value, nil
}

func parseColorAt(pos lexer.Position, literal string) (render.Color, error) {
	col, err := render.ParseColor(literal)
	if err != nil {
		return render.Color{}, fmt.Errorf("%s: %w", pos, err)
	}
	return col, nil
}

func alignmentByName(pos lexer.Position, name string) (layout.Alignment, error) {
	switch strings.ToLower(name) {
	case "top-left":
		return layout.AlignTopLeft, nil
	case "top-right":
		return layout.AlignTopRight, nil
	case "bottom-left":
		return layout.AlignBottomLeft, nil
	case "bottom-right":
		return layout.AlignBottomRight, nil
	case "fill":
		return layout.AlignFill, nil
	default:
		return 0, fmt.Errorf("%s: unknown placement %q", pos, name)
	}
}

func anchorByName(pos lexer.Position, name string) (render.Anchor, error) {
	switch strings.ToLower(name) {
	case "top-left":
		return render.AnchorTopLeft, nil
	case "top-center":
		return render.AnchorTopCenter, nil
	case "top-right":
		return render.AnchorTopRight, nil
	case "middle-left":
		return render.AnchorMiddleLeft, nil
	case "center":
		return render.AnchorCenter, nil
	case "middle-right":
		return render.AnchorMiddleRight, nil
	case "bottom-left":
		return render.AnchorBottomLeft, nil
	case "bottom-center":
		return render.AnchorBottomCenter, nil
	case "bottom-right":
		return render.AnchorBottomRight, nil
	default:
		return 0, fmt.Errorf("%s: unknown anchor %q", pos, name)
	}
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
