// layout/errors.go
package layout

import "fmt"

// -- Error Taxonomy --
//
// All failures surfaced by this package are typed so callers can distinguish
// "you forgot to supply context" from "these operands can never combine".
// Every error is returned, never panicked.

// MissingContextError reports a conversion that required contextual
// information (a DPI for physical units, or a basis dimension for percent
// lengths) which the caller did not supply.
type MissingContextError struct {
	Unit    Unit   // the unit that needed the context
	Context string // "dpi" or "basis"
}

// NewMissingContextError builds a MissingContextError for the given unit and
// missing context kind.
func NewMissingContextError(unit Unit, context string) *MissingContextError {
	return &MissingContextError{Unit: unit, Context: context}
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("cannot resolve %q length: no %s in context", e.Unit, e.Context)
}

// IncompatibleUnitsError reports an arithmetic combination of two lengths
// whose units cannot be reconciled without contextual information, such as
// adding pixels to inches.
type IncompatibleUnitsError struct {
	Op    string // "add" or "subtract"
	Left  Unit
	Right Unit
}

// NewIncompatibleUnitsError builds an IncompatibleUnitsError for the given
// operation and operand units.
func NewIncompatibleUnitsError(op string, left, right Unit) *IncompatibleUnitsError {
	return &IncompatibleUnitsError{Op: op, Left: left, Right: right}
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot %s %q and %q lengths without a resolution context", e.Op, e.Left, e.Right)
}

// ZeroBasisError reports an attempt to express a non-zero length as a
// percentage of a zero-sized basis. There is no finite answer.
type ZeroBasisError struct {
	Value float64 // the length's resolved pixel value
}

// NewZeroBasisError builds a ZeroBasisError for the given non-zero pixel
// value.
func NewZeroBasisError(value float64) *ZeroBasisError {
	return &ZeroBasisError{Value: value}
}

func (e *ZeroBasisError) Error() string {
	return fmt.Sprintf("cannot express %g pixels as a percentage of a zero basis", e.Value)
}

// InvalidConfigError reports a structurally invalid layout request, such as
// a root element carrying a margin or a grid with a non-positive cell count.
type InvalidConfigError struct {
	Reason string
}

// NewInvalidConfigError builds an InvalidConfigError with the given reason.
func NewInvalidConfigError(reason string) *InvalidConfigError {
	return &InvalidConfigError{Reason: reason}
}

func (e *InvalidConfigError) Error() string {
	return "invalid layout configuration: " + e.Reason
}

// BoundsError reports a grid cell or span that falls outside the grid it was
// addressed against.
type BoundsError struct {
	Axis  string // "row" or "column"
	Index int    // first cell index requested
	Span  int    // number of cells requested
	Count int    // cells available on the axis
}

// NewBoundsError builds a BoundsError for the given axis and request.
func NewBoundsError(axis string, index, span, count int) *BoundsError {
	return &BoundsError{Axis: axis, Index: index, Span: span, Count: count}
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s %d with span %d is outside a grid of %d %ss", e.Axis, e.Index, e.Span, e.Count, e.Axis)
}

// ParseError reports a length literal that could not be understood.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse length literal %q", e.Input)
}
