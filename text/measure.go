package text

// Extent is a measured text box in device pixels.
type Extent struct {
	Width  float64
	Height float64
}

// Measurer measures a single line of text. Implementations convert the
// font's point size through the given DPI and report the tight glyph
// bounding box: ascent plus descent, excluding line gap or leading, so
// different back-ends agree on what "fits".
//
// Empty text measures as a zero Extent.
type Measurer interface {
	MeasureText(text string, font Font, dpi float64) (Extent, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, font Font, dpi float64) (Extent, error)

// MeasureText calls the wrapped function.
func (f MeasurerFunc) MeasureText(text string, font Font, dpi float64) (Extent, error) {
	return f(text, font, dpi)
}
