// layout/element_test.go
package layout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formeset/platen/layout"
)

// newPage builds a root element with a concrete pixel size, the usual
// starting point of a layout tree.
func newPage(t *testing.T, width, height float64) *layout.Element {
	t.Helper()
	page := layout.NewElement()
	page.SetSize(layout.NewMeasure(layout.Px(width), layout.Px(height)))
	return page
}

// attach adds child to parent, failing the test on a structural error.
func attach(t *testing.T, parent, child *layout.Element) {
	t.Helper()
	require.NoError(t, parent.AddChild(child))
}

func TestRootRegionStartsAtOrigin(t *testing.T) {
	page := newPage(t, 640, 480)
	region, err := page.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(0, 0, 640, 480), region)
}

func TestRootResolvesPhysicalSizeWithDefaultDPI(t *testing.T) {
	page := layout.NewElement()
	page.SetSize(layout.NewMeasure(layout.In(2), layout.In(1)))

	// 2in x 1in at the 96dpi fallback.
	region, err := page.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(0, 0, 192, 96), region)
}

func TestRootRejectsPercentSize(t *testing.T) {
	page := layout.NewElement()
	page.SetSize(layout.NewMeasure(layout.Percent(100), layout.Px(100)))

	_, err := page.GetAbsoluteRegion()
	var missing *layout.MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "basis", missing.Context)
}

func TestRootRejectsNonZeroMargin(t *testing.T) {
	page := newPage(t, 100, 100)
	page.SetMargin(layout.UniformInset(layout.Px(1)))

	_, err := page.GetAbsoluteRegion()
	var invalid *layout.InvalidConfigError
	require.ErrorAs(t, err, &invalid)
}

func TestRootAllowsZeroMarginOfAnyUnit(t *testing.T) {
	page := newPage(t, 100, 100)
	page.SetMargin(layout.UniformInset(layout.In(0)))

	_, err := page.GetAbsoluteRegion()
	require.NoError(t, err)
}

func TestFillRespectsPaddingAndMargin(t *testing.T) {
	page := newPage(t, 200, 200)
	page.SetPadding(layout.UniformInset(layout.Px(10)))

	child := layout.NewElement()
	child.SetAlignment(layout.AlignFill)
	child.SetMargin(layout.UniformInset(layout.Px(5)))
	attach(t, page, child)

	// Content box is (10,10)-(190,190); the margin contracts it by 5 more.
	region, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(15, 15, 185, 185), region)
	assert.Equal(t, 170.0, region.Width())
	assert.Equal(t, 170.0, region.Height())
}

func TestPercentResolvesAgainstContentBox(t *testing.T) {
	page := newPage(t, 400, 400)

	child := layout.NewElement()
	child.SetSize(layout.NewMeasure(layout.Percent(50), layout.Percent(25)))
	attach(t, page, child)

	region, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, 200.0, region.Width())
	assert.Equal(t, 100.0, region.Height())

	// With padding the basis shrinks to the content box, not the full 400.
	page.SetPadding(layout.UniformInset(layout.Px(50)))
	region, err = child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, 150.0, region.Width())
	assert.Equal(t, 75.0, region.Height())
}

func TestCornerAlignments(t *testing.T) {
	tests := []struct {
		name      string
		alignment layout.Alignment
		want      layout.Region
	}{
		{name: "top left", alignment: layout.AlignTopLeft, want: layout.NewRegion(5, 5, 25, 15)},
		{name: "top right", alignment: layout.AlignTopRight, want: layout.NewRegion(75, 5, 95, 15)},
		{name: "bottom left", alignment: layout.AlignBottomLeft, want: layout.NewRegion(5, 85, 25, 95)},
		{name: "bottom right", alignment: layout.AlignBottomRight, want: layout.NewRegion(75, 85, 95, 95)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newPage(t, 100, 100)
			child := layout.NewElement()
			child.SetAlignment(tt.alignment)
			child.SetSize(layout.NewMeasure(layout.Px(20), layout.Px(10)))
			child.SetMargin(layout.UniformInset(layout.Px(5)))
			attach(t, page, child)

			got, err := child.GetAbsoluteRegion()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("region mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNegativeRegionsAreValid(t *testing.T) {
	page := newPage(t, 200, 200)
	child := layout.NewElement()
	child.SetAlignment(layout.AlignFill)
	child.SetMargin(layout.UniformInset(layout.Px(150)))
	attach(t, page, child)

	// Margins larger than the content box invert the rectangle. That is a
	// legitimate result, not a failure.
	region, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(150, 150, 50, 50), region)
	assert.Equal(t, -100.0, region.Width())
	assert.Equal(t, -100.0, region.Height())
}

func TestEffectiveDPIInheritance(t *testing.T) {
	root := newPage(t, 100, 100)
	root.SetDPI(300)

	level1 := layout.NewElement()
	level2 := layout.NewElement()
	level3 := layout.NewElement()
	attach(t, root, level1)
	attach(t, level1, level2)
	attach(t, level2, level3)

	for _, e := range []*layout.Element{root, level1, level2, level3} {
		assert.Equal(t, 300.0, e.EffectiveDPI())
	}

	// An override in the middle affects that node and below, never above.
	level2.SetDPI(150)
	assert.Equal(t, 300.0, root.EffectiveDPI())
	assert.Equal(t, 300.0, level1.EffectiveDPI())
	assert.Equal(t, 150.0, level2.EffectiveDPI())
	assert.Equal(t, 150.0, level3.EffectiveDPI())

	level2.ClearDPI()
	assert.Equal(t, 300.0, level3.EffectiveDPI())
}

func TestEffectiveDPIDefault(t *testing.T) {
	assert.Equal(t, layout.DefaultDPI, layout.NewElement().EffectiveDPI())
}

func TestPhysicalUnitsResolveWithEffectiveDPI(t *testing.T) {
	root := newPage(t, 600, 600)
	root.SetDPI(300)

	child := layout.NewElement()
	child.SetSize(layout.NewMeasure(layout.In(1), layout.Mm(25.4)))
	attach(t, root, child)

	// Both axes are one inch at 300dpi.
	region, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, 300.0, region.Width())
	assert.Equal(t, 300.0, region.Height())
}

func TestGetAbsoluteRegionIsIdempotent(t *testing.T) {
	page := newPage(t, 317, 211)
	page.SetPadding(layout.NewInset(layout.Px(3), layout.Mm(2), layout.Percent(5), layout.Px(0)))

	child := layout.NewElement()
	child.SetAlignment(layout.AlignFill)
	child.SetMargin(layout.UniformInset(layout.Percent(7.5)))
	attach(t, page, child)

	first, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	second, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMutationInvalidatesDescendantRegions(t *testing.T) {
	page := newPage(t, 200, 200)
	child := layout.NewElement()
	child.SetAlignment(layout.AlignFill)
	grandchild := layout.NewElement()
	grandchild.SetAlignment(layout.AlignFill)
	attach(t, page, child)
	attach(t, child, grandchild)

	region, err := grandchild.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(0, 0, 200, 200), region)

	// Changing the root's padding must flow through both cached levels.
	page.SetPadding(layout.UniformInset(layout.Px(10)))
	region, err = grandchild.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(10, 10, 190, 190), region)

	// Resizing the root reflows everything below it.
	page.SetSize(layout.NewMeasure(layout.Px(100), layout.Px(100)))
	region, err = grandchild.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(10, 10, 90, 90), region)
}

func TestAddChildReparents(t *testing.T) {
	first := newPage(t, 100, 100)
	second := newPage(t, 50, 50)
	child := layout.NewElement()
	child.SetAlignment(layout.AlignFill)

	attach(t, first, child)
	assert.Equal(t, first, child.Parent())
	assert.Len(t, first.Children(), 1)

	region, err := child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(0, 0, 100, 100), region)

	// Moving to another parent detaches from the old one first.
	attach(t, second, child)
	assert.Equal(t, second, child.Parent())
	assert.Empty(t, first.Children())
	require.Len(t, second.Children(), 1)
	assert.Equal(t, child, second.Children()[0])

	// The region cached under the old parent must not survive the move.
	region, err = child.GetAbsoluteRegion()
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(0, 0, 50, 50), region)
}

func TestAddChildKeepsInsertionOrder(t *testing.T) {
	page := newPage(t, 100, 100)
	a := layout.NewElement()
	b := layout.NewElement()
	c := layout.NewElement()
	attach(t, page, a)
	attach(t, page, b)
	attach(t, page, c)
	assert.Equal(t, []*layout.Element{a, b, c}, page.Children())

	// Re-adding an existing child moves it to the end.
	attach(t, page, a)
	assert.Equal(t, []*layout.Element{b, c, a}, page.Children())
}

func TestAddChildRejectsCycles(t *testing.T) {
	root := newPage(t, 100, 100)
	child := layout.NewElement()
	attach(t, root, child)

	var invalid *layout.InvalidConfigError
	require.ErrorAs(t, child.AddChild(root), &invalid)
	require.ErrorAs(t, child.AddChild(child), &invalid)
	require.ErrorAs(t, root.AddChild(nil), &invalid)
}

func TestRemoveChild(t *testing.T) {
	page := newPage(t, 100, 100)
	child := layout.NewElement()
	stranger := layout.NewElement()
	attach(t, page, child)

	assert.False(t, page.RemoveChild(stranger))
	assert.False(t, page.RemoveChild(nil))

	assert.True(t, page.RemoveChild(child))
	assert.Nil(t, child.Parent())
	assert.Empty(t, page.Children())
	assert.False(t, page.RemoveChild(child))
}

func TestRootWalksToTreeTop(t *testing.T) {
	root := newPage(t, 10, 10)
	mid := layout.NewElement()
	leaf := layout.NewElement()
	attach(t, root, mid)
	attach(t, mid, leaf)

	assert.Equal(t, root, leaf.Root())
	assert.Equal(t, root, root.Root())
}
