package layout

// Inset is four-sided spacing. The same type serves as margin (outside an
// element's region) and padding (inside it); only the resolver step that
// consumes it differs.
type Inset struct {
	Left   Length
	Top    Length
	Right  Length
	Bottom Length
}

// NewInset builds an Inset from four side lengths.
func NewInset(left, top, right, bottom Length) Inset {
	return Inset{Left: left, Top: top, Right: right, Bottom: bottom}
}

// UniformInset builds an Inset with the same length on all four sides.
func UniformInset(l Length) Inset {
	return Inset{Left: l, Top: l, Right: l, Bottom: l}
}

// IsZero reports whether all four sides have zero magnitude, regardless of
// unit.
func (i Inset) IsZero() bool {
	return i.Left.IsZero() && i.Top.IsZero() && i.Right.IsZero() && i.Bottom.IsZero()
}
