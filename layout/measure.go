package layout

// Measure is a two-axis desired size. The resolver ignores it when the
// element's alignment is AlignFill.
type Measure struct {
	Width  Length
	Height Length
}

// NewMeasure builds a Measure from a width and a height.
func NewMeasure(width, height Length) Measure {
	return Measure{Width: width, Height: height}
}

// ToPixels resolves both axes to pixels against the given basis dimensions.
func (m Measure) ToPixels(dpi, basisWidth, basisHeight float64) (w, h float64, err error) {
	w, err = m.Width.ToPixels(dpi, basisWidth)
	if err != nil {
		return 0, 0, err
	}
	h, err = m.Height.ToPixels(dpi, basisHeight)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// ConcretePixels resolves both axes to pixels in a context with no basis,
// refusing percent lengths.
func (m Measure) ConcretePixels(dpi float64) (w, h float64, err error) {
	w, err = m.Width.ConcretePixels(dpi)
	if err != nil {
		return 0, 0, err
	}
	h, err = m.Height.ConcretePixels(dpi)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
