// Package layout implements a deterministic, print-oriented box model.
//
// Callers build a tree of Elements whose spacing and sizing are expressed in
// mixed physical and relative units (pixels, inches, millimeters, percent),
// then ask any node for its absolute pixel Region. Because every edge is
// derived from the same parent content-box arithmetic, adjacent elements that
// share a boundary resolve to bit-identical edge coordinates, so grids and
// tables render without hairline gaps or overlaps.
package layout

// -- Units and Conversion Constants --

// Unit identifies how a Length's numeric value is to be interpreted.
type Unit int

const (
	// UnitPixel is a device pixel. Context free.
	UnitPixel Unit = iota
	// UnitInch is a physical inch. Converting requires a DPI.
	UnitInch
	// UnitMillimeter is a physical millimeter. Converting requires a DPI.
	UnitMillimeter
	// UnitPercent is a fraction of a contextual basis dimension, expressed
	// as 0-100. Converting requires the basis.
	UnitPercent
)

const (
	// MillimetersPerInch is the exact definition of the international inch.
	MillimetersPerInch = 25.4

	// DefaultDPI is the resolution assumed when no element in an ancestor
	// chain carries an explicit DPI override. It matches the CSS reference
	// pixel density of 96 dots per inch.
	DefaultDPI = 96.0
)

// String returns the canonical short suffix for the unit: "px", "in", "mm"
// or "%".
func (u Unit) String() string {
	switch u {
	case UnitPixel:
		return "px"
	case UnitInch:
		return "in"
	case UnitMillimeter:
		return "mm"
	case UnitPercent:
		return "%"
	default:
		return "?"
	}
}

// physical reports whether the unit denotes an absolute physical distance,
// convertible to any other physical unit without contextual information.
func (u Unit) physical() bool {
	return u == UnitInch || u == UnitMillimeter
}
