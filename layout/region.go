package layout

import "fmt"

// Region is a resolved rectangle in absolute device pixels, stored as its
// four edge coordinates. Width and height are always derived, never stored:
// two siblings that compute a shared boundary from the same parent
// arithmetic end up with bit-identical edge values instead of each rounding
// its own width. A Region with right < left or bottom < top is a valid
// value, not an error.
type Region struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRegion builds a Region from four edge coordinates.
func NewRegion(left, top, right, bottom float64) Region {
	return Region{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns Right - Left. May be negative.
func (r Region) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top. May be negative.
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Inset returns the region contracted inward by the given pixel amounts.
// Negative amounts expand it.
func (r Region) Inset(left, top, right, bottom float64) Region {
	return Region{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Right:  r.Right - right,
		Bottom: r.Bottom - bottom,
	}
}

// String renders the region as "(left,top)-(right,bottom)".
func (r Region) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}
