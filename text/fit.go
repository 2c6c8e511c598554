// text/fit.go
package text

import (
	"github.com/formeset/platen/layout"
)

const (
	// MinFontPoints is the default lower bound of the fitting search.
	MinFontPoints = 6.0
	// MaxFontPoints is the default upper bound of the fitting search.
	MaxFontPoints = 72.0

	// fitPrecision is the point-size interval below which the bisection
	// stops narrowing.
	fitPrecision = 0.1
)

// GetMaxFontSize finds the largest point size in [MinFontPoints,
// MaxFontPoints] at which text, set in the given font, measures within
// bounds. See GetMaxFontSizeBetween.
func GetMaxFontSize(m Measurer, text string, font Font, bounds layout.Measure, dpi float64) (float64, error) {
	return GetMaxFontSizeBetween(m, text, font, bounds, dpi, MinFontPoints, MaxFontPoints)
}

// GetMaxFontSizeBetween bisects [minPt, maxPt] for the largest point size at
// which text measures within bounds. The font's own SizePoints is ignored;
// only its family, weight and style matter. Bounds must resolve to pixels
// without a basis, so percent bounds are refused.
//
// The lower bound is assumed to fit and is returned unmeasured when nothing
// larger does; callers that cannot tolerate overflow at minPt should verify
// the result with one more measurement. Empty text fits at any size and
// returns maxPt. minPt > maxPt is a configuration error.
func GetMaxFontSizeBetween(m Measurer, text string, font Font, bounds layout.Measure, dpi float64, minPt, maxPt float64) (float64, error) {
	if minPt > maxPt {
		return 0, layout.NewInvalidConfigError("font fit interval is inverted")
	}
	if text == "" {
		return maxPt, nil
	}

	boundWidth, err := bounds.Width.ConcretePixels(dpi)
	if err != nil {
		return 0, err
	}
	boundHeight, err := bounds.Height.ConcretePixels(dpi)
	if err != nil {
		return 0, err
	}

	// Invariant: low always fits (or is the assumed-fit minPt), high never
	// shrinks below a size that failed.
	low, high := minPt, maxPt
	for high-low > fitPrecision {
		mid := (low + high) / 2
		extent, err := m.MeasureText(text, font.WithSize(mid), dpi)
		if err != nil {
			return 0, err
		}
		if extent.Width <= boundWidth && extent.Height <= boundHeight {
			low = mid
		} else {
			high = mid
		}
	}
	return low, nil
}
