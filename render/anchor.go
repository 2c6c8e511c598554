// render/anchor.go
package render

import "github.com/formeset/platen/layout"

// -- Content Alignment --

// Anchor names one of nine points of a region used to place content inside
// it. It aligns what is drawn within an already-resolved region; it is
// unrelated to how elements position themselves in the layout tree.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// String returns a stable lower-case name such as "middle-left".
func (a Anchor) String() string {
	rows := [3]string{"top", "middle", "bottom"}
	cols := [3]string{"left", "center", "right"}
	if a < AnchorTopLeft || a > AnchorBottomRight {
		return "unknown"
	}
	if a == AnchorCenter {
		return "center"
	}
	return rows[int(a)/3] + "-" + cols[int(a)%3]
}

// Point returns the anchor's coordinates on the given region.
func (a Anchor) Point(r layout.Region) Point {
	var p Point
	switch int(a) % 3 {
	case 0:
		p.X = r.Left
	case 1:
		p.X = r.Left + r.Width()/2
	case 2:
		p.X = r.Right
	}
	switch int(a) / 3 {
	case 0:
		p.Y = r.Top
	case 1:
		p.Y = r.Top + r.Height()/2
	case 2:
		p.Y = r.Bottom
	}
	return p
}

// AlignInRegion places a box of the given pixel size inside the region at
// the anchor and returns its rectangle. The box may overhang the region if
// it is larger.
func AlignInRegion(width, height float64, region layout.Region, anchor Anchor) layout.Region {
	var left float64
	switch int(anchor) % 3 {
	case 0:
		left = region.Left
	case 1:
		left = region.Left + (region.Width()-width)/2
	case 2:
		left = region.Right - width
	}

	var top float64
	switch int(anchor) / 3 {
	case 0:
		top = region.Top
	case 1:
		top = region.Top + (region.Height()-height)/2
	case 2:
		top = region.Bottom - height
	}

	return layout.NewRegion(left, top, left+width, top+height)
}

// -- Scaling --

// ScaleMode chooses how source content of a fixed aspect ratio maps onto a
// target region.
type ScaleMode int

const (
	// ScaleFit scales the content to the largest size fully contained in
	// the region, preserving aspect ratio.
	ScaleFit ScaleMode = iota
	// ScaleCover scales the content to the smallest size fully covering
	// the region, preserving aspect ratio.
	ScaleCover
	// ScaleStretch fills the region exactly, distorting the aspect ratio.
	ScaleStretch
)

// String returns "fit", "cover" or "stretch".
func (m ScaleMode) String() string {
	switch m {
	case ScaleFit:
		return "fit"
	case ScaleCover:
		return "cover"
	case ScaleStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// Apply maps content of the given source pixel size onto the region under
// the scale mode, anchoring any leftover space or overhang at the anchor.
// Degenerate inputs (non-positive source or region dimensions) collapse to
// a zero-size box at the anchor point.
func (m ScaleMode) Apply(sourceWidth, sourceHeight float64, region layout.Region, anchor Anchor) layout.Region {
	if m == ScaleStretch {
		return region
	}
	return scaleRegion(sourceWidth, sourceHeight, region, anchor, m == ScaleCover)
}

// FitRegion scales a sourceWidth x sourceHeight box to the largest size
// contained by the region and anchors it.
func FitRegion(sourceWidth, sourceHeight float64, region layout.Region, anchor Anchor) layout.Region {
	return scaleRegion(sourceWidth, sourceHeight, region, anchor, false)
}

// CoverRegion scales a sourceWidth x sourceHeight box to the smallest size
// covering the region and anchors it.
func CoverRegion(sourceWidth, sourceHeight float64, region layout.Region, anchor Anchor) layout.Region {
	return scaleRegion(sourceWidth, sourceHeight, region, anchor, true)
}

func scaleRegion(sourceWidth, sourceHeight float64, region layout.Region, anchor Anchor, cover bool) layout.Region {
	if sourceWidth <= 0 || sourceHeight <= 0 || region.Width() <= 0 || region.Height() <= 0 {
		return AlignInRegion(0, 0, region, anchor)
	}

	scaleX := region.Width() / sourceWidth
	scaleY := region.Height() / sourceHeight
	scale := scaleX
	if cover {
		if scaleY > scale {
			scale = scaleY
		}
	} else {
		if scaleY < scale {
			scale = scaleY
		}
	}
	return AlignInRegion(sourceWidth*scale, sourceHeight*scale, region, anchor)
}

// PadRegion contracts a region by an Inset, resolving each side against the
// region's own dimensions at the given DPI. It mirrors how element padding
// derives a content box.
func PadRegion(region layout.Region, inset layout.Inset, dpi float64) (layout.Region, error) {
	width := region.Width()
	height := region.Height()

	left, err := inset.Left.ToPixels(dpi, width)
	if err != nil {
		return layout.Region{}, err
	}
	top, err := inset.Top.ToPixels(dpi, height)
	if err != nil {
		return layout.Region{}, err
	}
	right, err := inset.Right.ToPixels(dpi, width)
	if err != nil {
		return layout.Region{}, err
	}
	bottom, err := inset.Bottom.ToPixels(dpi, height)
	if err != nil {
		return layout.Region{}, err
	}
	return region.Inset(left, top, right, bottom), nil
}
