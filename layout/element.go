// layout/element.go
package layout

// -- Alignment --

// Alignment positions an element within its parent's content box. Corner
// modes anchor one corner and size the element from its Measure; AlignFill
// stretches the element to the content box minus its margin, ignoring the
// Measure entirely.
type Alignment int

const (
	AlignTopLeft Alignment = iota
	AlignTopRight
	AlignBottomLeft
	AlignBottomRight
	AlignFill
)

// String returns a stable lower-case name for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignTopLeft:
		return "top-left"
	case AlignTopRight:
		return "top-right"
	case AlignBottomLeft:
		return "bottom-left"
	case AlignBottomRight:
		return "bottom-right"
	case AlignFill:
		return "fill"
	default:
		return "unknown"
	}
}

// anchorsLeft reports whether the horizontal near edge is the left one.
func (a Alignment) anchorsLeft() bool {
	return a == AlignTopLeft || a == AlignBottomLeft
}

// anchorsTop reports whether the vertical near edge is the top one.
func (a Alignment) anchorsTop() bool {
	return a == AlignTopLeft || a == AlignTopRight
}

// -- Element --

// Element is a node in a layout tree. A parent owns its children; the
// back-pointer to the parent is non-owning. An element with no parent is a
// layout root and must have a concrete (non-percent) size and a zero margin.
//
// Resolved regions are cached per element. Mutating any layout-affecting
// property invalidates the cache of that element and, transitively, of all
// its descendants, since a descendant's region is derived from its
// ancestors' regions. Elements are not safe for concurrent mutation;
// callers that share a tree across goroutines must synchronize externally.
type Element struct {
	parent   *Element
	children []*Element

	alignment Alignment
	margin    Inset
	padding   Inset
	size      Measure
	dpi       float64 // <= 0 means inherit from the nearest ancestor

	cached     Region
	cacheValid bool
}

// NewElement builds a detached element with AlignTopLeft alignment, a zero
// pixel size and no spacing.
func NewElement() *Element {
	return &Element{}
}

// -- Properties --

// Alignment returns the element's positioning mode.
func (e *Element) Alignment() Alignment { return e.alignment }

// SetAlignment sets the positioning mode and invalidates cached regions for
// the element and its descendants.
func (e *Element) SetAlignment(a Alignment) {
	e.alignment = a
	e.invalidate()
}

// Margin returns the spacing outside the element's region.
func (e *Element) Margin() Inset { return e.margin }

// SetMargin sets the outside spacing and invalidates cached regions.
func (e *Element) SetMargin(m Inset) {
	e.margin = m
	e.invalidate()
}

// Padding returns the spacing inside the element's region, which contracts
// the content box its children are laid out in.
func (e *Element) Padding() Inset { return e.padding }

// SetPadding sets the inside spacing and invalidates cached regions.
func (e *Element) SetPadding(p Inset) {
	e.padding = p
	e.invalidate()
}

// Size returns the element's desired size. Ignored under AlignFill.
func (e *Element) Size() Measure { return e.size }

// SetSize sets the desired size and invalidates cached regions.
func (e *Element) SetSize(s Measure) {
	e.size = s
	e.invalidate()
}

// DPI returns the element's own DPI override, or 0 if it inherits.
func (e *Element) DPI() float64 { return e.dpi }

// SetDPI sets a DPI override for the element and its descendants. A value
// <= 0 clears the override.
func (e *Element) SetDPI(dpi float64) {
	e.dpi = dpi
	e.invalidate()
}

// ClearDPI removes the element's DPI override so it inherits again.
func (e *Element) ClearDPI() {
	e.dpi = 0
	e.invalidate()
}

// -- Tree Structure --

// Parent returns the element's parent, or nil for a root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the ordered child list. Order is insertion
// order and stable for iteration.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Root walks up the parent chain and returns the tree's root, which may be
// the element itself.
func (e *Element) Root() *Element {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// AddChild attaches child to the element, detaching it first from any
// previous parent so an element never has two owners. Attaching an element
// to itself or to one of its own descendants is refused. A re-added child
// of the same parent moves to the end of the child list.
func (e *Element) AddChild(child *Element) error {
	if child == nil {
		return NewInvalidConfigError("cannot attach a nil element")
	}
	for a := e; a != nil; a = a.parent {
		if a == child {
			return NewInvalidConfigError("attaching the element would create a cycle")
		}
	}
	if child.parent != nil {
		child.parent.spliceOut(child)
	}
	e.children = append(e.children, child)
	child.parent = e
	child.invalidate()
	return nil
}

// RemoveChild detaches child from the element. It reports whether the child
// was actually attached.
func (e *Element) RemoveChild(child *Element) bool {
	if child == nil || child.parent != e {
		return false
	}
	if !e.spliceOut(child) {
		return false
	}
	child.parent = nil
	child.invalidate()
	return true
}

func (e *Element) spliceOut(child *Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return true
		}
	}
	return false
}

// invalidate clears the cached region of the element and all descendants.
func (e *Element) invalidate() {
	e.cacheValid = false
	for _, c := range e.children {
		c.invalidate()
	}
}

// -- Resolution --

// EffectiveDPI returns the element's own DPI override if set, else the
// nearest ancestor's, else DefaultDPI.
func (e *Element) EffectiveDPI() float64 {
	for n := e; n != nil; n = n.parent {
		if n.dpi > 0 {
			return n.dpi
		}
	}
	return DefaultDPI
}

// GetAbsoluteRegion resolves the element's rectangle in absolute device
// pixels, recursing through its ancestors as needed. Results are cached
// until a mutation invalidates them; repeated calls on an unmutated tree
// return identical regions.
//
// Both edges of every axis are computed explicitly from the parent's
// content-box arithmetic, so two siblings that meet at a boundary arrive at
// the same floating-point coordinate independently. Negative-size regions
// (right < left or bottom < top) are valid results, not errors.
func (e *Element) GetAbsoluteRegion() (Region, error) {
	if e.cacheValid {
		return e.cached, nil
	}
	region, err := e.resolveRegion()
	if err != nil {
		return Region{}, err
	}
	e.cached = region
	e.cacheValid = true
	return region, nil
}

func (e *Element) resolveRegion() (Region, error) {
	dpi := e.EffectiveDPI()

	// A root has no container: its region starts at the origin and its
	// size must resolve without a basis.
	if e.parent == nil {
		if !e.margin.IsZero() {
			return Region{}, NewInvalidConfigError("a root element cannot carry a margin")
		}
		width, err := e.size.Width.ConcretePixels(dpi)
		if err != nil {
			return Region{}, err
		}
		height, err := e.size.Height.ConcretePixels(dpi)
		if err != nil {
			return Region{}, err
		}
		return NewRegion(0, 0, width, height), nil
	}

	parentRegion, err := e.parent.GetAbsoluteRegion()
	if err != nil {
		return Region{}, err
	}

	// The parent's padding contracts its region into the content box the
	// element is positioned in. Padding percentages resolve against the
	// parent's full region, per axis.
	parentWidth := parentRegion.Width()
	parentHeight := parentRegion.Height()
	padLeft, err := e.parent.padding.Left.ToPixels(dpi, parentWidth)
	if err != nil {
		return Region{}, err
	}
	padTop, err := e.parent.padding.Top.ToPixels(dpi, parentHeight)
	if err != nil {
		return Region{}, err
	}
	padRight, err := e.parent.padding.Right.ToPixels(dpi, parentWidth)
	if err != nil {
		return Region{}, err
	}
	padBottom, err := e.parent.padding.Bottom.ToPixels(dpi, parentHeight)
	if err != nil {
		return Region{}, err
	}

	contentLeft := parentRegion.Left + padLeft
	contentTop := parentRegion.Top + padTop
	contentWidth := parentWidth - padLeft - padRight
	contentHeight := parentHeight - padTop - padBottom

	// Margin percentages resolve against the content box, not the full
	// parent region.
	marginLeft, err := e.margin.Left.ToPixels(dpi, contentWidth)
	if err != nil {
		return Region{}, err
	}
	marginTop, err := e.margin.Top.ToPixels(dpi, contentHeight)
	if err != nil {
		return Region{}, err
	}
	marginRight, err := e.margin.Right.ToPixels(dpi, contentWidth)
	if err != nil {
		return Region{}, err
	}
	marginBottom, err := e.margin.Bottom.ToPixels(dpi, contentHeight)
	if err != nil {
		return Region{}, err
	}

	if e.alignment == AlignFill {
		return NewRegion(
			contentLeft+marginLeft,
			contentTop+marginTop,
			contentLeft+contentWidth-marginRight,
			contentTop+contentHeight-marginBottom,
		), nil
	}

	width, err := e.size.Width.ToPixels(dpi, contentWidth)
	if err != nil {
		return Region{}, err
	}
	height, err := e.size.Height.ToPixels(dpi, contentHeight)
	if err != nil {
		return Region{}, err
	}

	var left, right float64
	if e.alignment.anchorsLeft() {
		left = contentLeft + marginLeft
		right = left + width
	} else {
		right = contentLeft + contentWidth - marginRight
		left = right - width
	}

	var top, bottom float64
	if e.alignment.anchorsTop() {
		top = contentTop + marginTop
		bottom = top + height
	} else {
		bottom = contentTop + contentHeight - marginBottom
		top = bottom - height
	}

	return NewRegion(left, top, right, bottom), nil
}
