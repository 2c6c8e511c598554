package render

import (
	"image"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/text"
)

// Point is a position in absolute device pixels, y growing downward.
type Point struct {
	X float64
	Y float64
}

// Stroke describes an outline: its color and width in pixels.
type Stroke struct {
	Color Color
	Width float64
}

// RectStyle describes how a rectangle is painted. A nil Fill or Stroke
// skips that part.
type RectStyle struct {
	Fill   *Color
	Stroke *Stroke
}

// Surface is the drawing capability a back-end provides: primitives placed
// by absolute pixel coordinates with the origin at the top left. The layout
// core never draws; only the renderer calls these.
type Surface interface {
	// DrawText draws a single line anchored within the region. The font
	// size is in points; the back-end maps it to output units itself.
	DrawText(region layout.Region, content string, font text.Font, color Color, anchor Anchor) error

	// DrawRect paints and/or outlines the region.
	DrawRect(region layout.Region, style RectStyle) error

	// DrawLine draws a straight segment between two points.
	DrawLine(from, to Point, stroke Stroke) error

	// DrawImage draws the image scaled into the region.
	DrawImage(region layout.Region, img image.Image) error
}
