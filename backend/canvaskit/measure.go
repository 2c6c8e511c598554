// backend/canvaskit/measure.go
package canvaskit

import (
	"image/color"

	"github.com/formeset/platen/text"
)

// Measurer measures text with the real glyph metrics of the fonts held by a
// Library. It satisfies text.Measurer.
type Measurer struct {
	lib *Library
}

// NewMeasurer wraps a library in a Measurer.
func NewMeasurer(lib *Library) *Measurer {
	return &Measurer{lib: lib}
}

// MeasureText reports the tight pixel extent of a single line at the given
// density. The height is the ascent plus descent of the face, not the line
// height, so stacked fits stay conservative.
func (m *Measurer) MeasureText(content string, f text.Font, dpi float64) (text.Extent, error) {
	if content == "" {
		return text.Extent{}, nil
	}
	m.lib.mu.Lock()
	defer m.lib.mu.Unlock()

	face, err := m.lib.face(f, color.Black)
	if err != nil {
		return text.Extent{}, err
	}
	metrics := face.Metrics()
	return text.Extent{
		Width:  mmToPx(face.TextWidth(content), dpi),
		Height: mmToPx(metrics.Ascent+metrics.Descent, dpi),
	}, nil
}

// Canvas geometry is millimeter based while the layout tree works in
// pixels, so every boundary crossing converts through the page density.

func mmToPx(mm, dpi float64) float64 {
	return mm * dpi / 25.4
}

func pxToMM(px, dpi float64) float64 {
	return px * 25.4 / dpi
}
