// Package text provides the font model, the single-line text measurement
// capability, and the search for the largest font size that fits a bound.
// It stays decoupled from any concrete font engine: back-ends implement
// Measurer, the rest of the package only consumes it.
package text

import "strings"

// -- Font Description --

// Weight is a numeric font weight on the usual 100-900 scale.
type Weight int

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// StyleFlags is a bit-combinable set of typographic styles. Multiple flags
// may be active at once, e.g. StyleItalic|StyleUnderline.
type StyleFlags uint8

const (
	StyleItalic StyleFlags = 1 << iota
	StyleUnderline
	StyleStrikethrough
	StyleOverline
)

// Has reports whether every flag in f is set.
func (s StyleFlags) Has(f StyleFlags) bool { return s&f == f }

// String renders the active flags joined by "|", or "regular" when none are
// set.
func (s StyleFlags) String() string {
	if s == 0 {
		return "regular"
	}
	parts := make([]string, 0, 4)
	if s.Has(StyleItalic) {
		parts = append(parts, "italic")
	}
	if s.Has(StyleUnderline) {
		parts = append(parts, "underline")
	}
	if s.Has(StyleStrikethrough) {
		parts = append(parts, "strikethrough")
	}
	if s.Has(StyleOverline) {
		parts = append(parts, "overline")
	}
	return strings.Join(parts, "|")
}

// Font describes a typeface request: which family at which size, weight and
// style. It is a plain value consumed by measurement and drawing back-ends.
type Font struct {
	Family     string
	SizePoints float64
	Weight     Weight
	Style      StyleFlags
}

// WithSize returns a copy of the font at a different point size.
func (f Font) WithSize(points float64) Font {
	f.SizePoints = points
	return f
}

// Bold reports whether the weight is at least WeightBold.
func (f Font) Bold() bool { return f.Weight >= WeightBold }
