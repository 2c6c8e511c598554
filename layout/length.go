// layout/length.go
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// -- Length --

// Length is an immutable magnitude tagged with a Unit. Conversions that
// depend on context take it explicitly: physical units need a DPI, percent
// lengths need a basis dimension. A dpi argument <= 0 means "no DPI
// available"; it is only consulted by units that require one.
type Length struct {
	Value float64
	Unit  Unit
}

// Px builds a pixel Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// In builds an inch Length.
func In(v float64) Length { return Length{Value: v, Unit: UnitInch} }

// Mm builds a millimeter Length.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMillimeter} }

// Percent builds a percent Length. The value is expressed as 0-100, not 0-1.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// IsZero reports whether the magnitude is exactly zero, regardless of unit.
func (l Length) IsZero() bool { return l.Value == 0 }

// String renders the length with its canonical suffix, e.g. "12.5mm" or
// "50%".
func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

// -- Conversions --

// ToPixels resolves the length to device pixels. Inch and millimeter lengths
// require dpi > 0; percent lengths resolve against basis, where a zero basis
// legitimately yields zero pixels.
func (l Length) ToPixels(dpi, basis float64) (float64, error) {
	switch l.Unit {
	case UnitPixel:
		return l.Value, nil
	case UnitInch:
		if dpi <= 0 {
			return 0, NewMissingContextError(l.Unit, "dpi")
		}
		return l.Value * dpi, nil
	case UnitMillimeter:
		if dpi <= 0 {
			return 0, NewMissingContextError(l.Unit, "dpi")
		}
		return l.Value * dpi / MillimetersPerInch, nil
	case UnitPercent:
		return basis * (l.Value / 100.0), nil
	default:
		return 0, NewInvalidConfigError(fmt.Sprintf("unknown unit %d", int(l.Unit)))
	}
}

// ConcretePixels resolves the length to pixels in a context where no basis
// dimension exists, such as a layout root. Percent lengths are refused with
// a MissingContextError rather than silently resolved against zero.
func (l Length) ConcretePixels(dpi float64) (float64, error) {
	if l.Unit == UnitPercent {
		return 0, NewMissingContextError(l.Unit, "basis")
	}
	return l.ToPixels(dpi, 0)
}

// ToInches resolves the length to inches. Pixel and percent lengths require
// dpi > 0; percent lengths additionally resolve against basis.
func (l Length) ToInches(dpi, basis float64) (float64, error) {
	switch l.Unit {
	case UnitInch:
		return l.Value, nil
	case UnitMillimeter:
		return l.Value / MillimetersPerInch, nil
	default:
		px, err := l.ToPixels(dpi, basis)
		if err != nil {
			return 0, err
		}
		if dpi <= 0 {
			return 0, NewMissingContextError(l.Unit, "dpi")
		}
		return px / dpi, nil
	}
}

// ToMillimeters resolves the length to millimeters. Pixel and percent
// lengths require dpi > 0; percent lengths additionally resolve against
// basis.
func (l Length) ToMillimeters(dpi, basis float64) (float64, error) {
	switch l.Unit {
	case UnitInch:
		return l.Value * MillimetersPerInch, nil
	case UnitMillimeter:
		return l.Value, nil
	default:
		in, err := l.ToInches(dpi, basis)
		if err != nil {
			return 0, err
		}
		return in * MillimetersPerInch, nil
	}
}

// ToPercent expresses the length as a percentage of basis pixels. A percent
// length is returned unchanged. A zero-valued length is 0% of any basis,
// including a zero one; a non-zero length over a zero basis has no finite
// answer and fails with a ZeroBasisError.
func (l Length) ToPercent(dpi, basis float64) (float64, error) {
	if l.Unit == UnitPercent {
		return l.Value, nil
	}
	px, err := l.ToPixels(dpi, basis)
	if err != nil {
		return 0, err
	}
	if px == 0 {
		return 0, nil
	}
	if basis == 0 {
		return 0, NewZeroBasisError(px)
	}
	return px / basis * 100.0, nil
}

// -- Arithmetic --

// Add returns l + other. Both operands must be physical (inch or
// millimeter); pixel and percent operands are rejected because they are
// ambiguous without a resolution context. The result carries the left
// operand's unit. A zero-valued operand of any unit is neutral and
// short-circuits to the other operand.
func (l Length) Add(other Length) (Length, error) {
	if l.Value == 0 {
		return other, nil
	}
	if other.Value == 0 {
		return l, nil
	}
	if !l.Unit.physical() || !other.Unit.physical() {
		return Length{}, NewIncompatibleUnitsError("add", l.Unit, other.Unit)
	}
	return Length{Value: l.Value + other.physicalValueIn(l.Unit), Unit: l.Unit}, nil
}

// Sub returns l - other under the same unit rules as Add.
func (l Length) Sub(other Length) (Length, error) {
	if other.Value == 0 {
		return l, nil
	}
	if l.Value == 0 {
		return Length{Value: -other.Value, Unit: other.Unit}, nil
	}
	if !l.Unit.physical() || !other.Unit.physical() {
		return Length{}, NewIncompatibleUnitsError("subtract", l.Unit, other.Unit)
	}
	return Length{Value: l.Value - other.physicalValueIn(l.Unit), Unit: l.Unit}, nil
}

// physicalValueIn converts between the two physical units. Callers guarantee
// both the receiver's unit and target are physical.
func (l Length) physicalValueIn(target Unit) float64 {
	if l.Unit == target {
		return l.Value
	}
	if target == UnitInch {
		return l.Value / MillimetersPerInch
	}
	return l.Value * MillimetersPerInch
}

// -- Parsing --

// ParseLength parses a length literal such as "12.5mm", "1in", "50%" or
// "96px". A bare number is taken as pixels. Leading/trailing whitespace is
// ignored and the suffix is case-insensitive.
func ParseLength(s string) (Length, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return Length{}, &ParseError{Input: s}
	}

	unit := UnitPixel
	body := trimmed
	switch {
	case strings.HasSuffix(trimmed, "px"):
		body = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(trimmed, "in"):
		unit = UnitInch
		body = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(trimmed, "mm"):
		unit = UnitMillimeter
		body = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(trimmed, "%"):
		unit = UnitPercent
		body = trimmed[:len(trimmed)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return Length{}, &ParseError{Input: s}
	}
	return Length{Value: value, Unit: unit}, nil
}
