// backend/canvaskit/surface.go
package canvaskit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	xdraw "golang.org/x/image/draw"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/render"
	"github.com/formeset/platen/text"
)

// Surface draws onto one page of a Document. It satisfies render.Surface,
// translating pixel coordinates into the millimeter space of the canvas.
type Surface struct {
	ctx *canvas.Context
	lib *Library
	dpi float64
}

func newSurface(ctx *canvas.Context, lib *Library, dpi float64) *Surface {
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &Surface{ctx: ctx, lib: lib, dpi: dpi}
}

// DrawText draws a single line anchored inside the region using the glyph
// extent of the face, then paints any decoration lines the font carries.
func (s *Surface) DrawText(region layout.Region, content string, f text.Font, col render.Color, anchor render.Anchor) error {
	if content == "" {
		return nil
	}
	s.lib.mu.Lock()
	face, err := s.lib.face(f, col.NRGBA())
	if err != nil {
		s.lib.mu.Unlock()
		return err
	}
	metrics := face.Metrics()
	widthPx := mmToPx(face.TextWidth(content), s.dpi)
	ascentPx := mmToPx(metrics.Ascent, s.dpi)
	descentPx := mmToPx(metrics.Descent, s.dpi)

	box := render.AlignInRegion(widthPx, ascentPx+descentPx, region, anchor)
	baseline := box.Top + ascentPx

	line := canvas.NewTextLine(face, content, canvas.Left)
	s.ctx.DrawText(pxToMM(box.Left, s.dpi), pxToMM(baseline, s.dpi), line)
	s.lib.mu.Unlock()

	return s.drawDecorations(f, col, box, baseline, descentPx)
}

// drawDecorations strokes underline, strikethrough and overline rules over
// the tight text box. The rule weight tracks the point size.
func (s *Surface) drawDecorations(f text.Font, col render.Color, box layout.Region, baseline, descentPx float64) error {
	if f.Style&(text.StyleUnderline|text.StyleStrikethrough|text.StyleOverline) == 0 {
		return nil
	}
	stroke := render.Stroke{Color: col, Width: f.SizePoints / 72 * s.dpi / 14}
	rule := func(y float64) error {
		return s.DrawLine(render.Point{X: box.Left, Y: y}, render.Point{X: box.Right, Y: y}, stroke)
	}
	if f.Style.Has(text.StyleUnderline) {
		if err := rule(baseline + descentPx/2); err != nil {
			return err
		}
	}
	if f.Style.Has(text.StyleStrikethrough) {
		if err := rule((box.Top + box.Bottom) / 2); err != nil {
			return err
		}
	}
	if f.Style.Has(text.StyleOverline) {
		if err := rule(box.Top); err != nil {
			return err
		}
	}
	return nil
}

// DrawRect paints and/or outlines the region. Regions without positive area
// are skipped.
func (s *Surface) DrawRect(region layout.Region, style render.RectStyle) error {
	w, h := region.Width(), region.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	if style.Fill != nil {
		s.ctx.SetFillColor(style.Fill.NRGBA())
	} else {
		s.ctx.SetFillColor(color.RGBA{})
	}
	if style.Stroke != nil {
		s.ctx.SetStrokeColor(style.Stroke.Color.NRGBA())
		s.ctx.SetStrokeWidth(pxToMM(style.Stroke.Width, s.dpi))
	} else {
		s.ctx.SetStrokeColor(color.RGBA{})
		s.ctx.SetStrokeWidth(0)
	}
	s.ctx.DrawPath(pxToMM(region.Left, s.dpi), pxToMM(region.Top, s.dpi), canvas.Rectangle(pxToMM(w, s.dpi), pxToMM(h, s.dpi)))
	return nil
}

// DrawLine draws a straight segment between two pixel positions.
func (s *Surface) DrawLine(from, to render.Point, stroke render.Stroke) error {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(pxToMM(to.X-from.X, s.dpi), pxToMM(to.Y-from.Y, s.dpi))

	s.ctx.SetFillColor(color.RGBA{})
	s.ctx.SetStrokeColor(stroke.Color.NRGBA())
	s.ctx.SetStrokeWidth(pxToMM(stroke.Width, s.dpi))
	s.ctx.DrawPath(pxToMM(from.X, s.dpi), pxToMM(from.Y, s.dpi), p)
	return nil
}

// DrawImage maps the image onto the region. The canvas image op scales
// uniformly, so a region with a different aspect ratio than the source is
// resampled first.
func (s *Surface) DrawImage(region layout.Region, img image.Image) error {
	if img == nil {
		return fmt.Errorf("drawing a nil image")
	}
	w, h := region.Width(), region.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	sx := w / float64(b.Dx())
	sy := h / float64(b.Dy())
	if math.Abs(sx-sy) > 1e-6*math.Max(sx, sy) {
		dst := image.NewRGBA(image.Rect(0, 0, int(w+0.5), int(h+0.5)))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
		img = dst
		b = dst.Bounds()
	}

	dpmm := float64(b.Dx()) / pxToMM(w, s.dpi)
	s.ctx.DrawImage(pxToMM(region.Left, s.dpi), pxToMM(region.Top, s.dpi), img, canvas.DPMM(dpmm))
	return nil
}
