// render/anchor_test.go
package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/render"
)

func TestAlignInRegion(t *testing.T) {
	region := layout.NewRegion(10, 20, 110, 220) // 100 x 200

	tests := []struct {
		anchor render.Anchor
		want   layout.Region
	}{
		{render.AnchorTopLeft, layout.NewRegion(10, 20, 30, 60)},
		{render.AnchorTopCenter, layout.NewRegion(50, 20, 70, 60)},
		{render.AnchorTopRight, layout.NewRegion(90, 20, 110, 60)},
		{render.AnchorMiddleLeft, layout.NewRegion(10, 100, 30, 140)},
		{render.AnchorCenter, layout.NewRegion(50, 100, 70, 140)},
		{render.AnchorMiddleRight, layout.NewRegion(90, 100, 110, 140)},
		{render.AnchorBottomLeft, layout.NewRegion(10, 180, 30, 220)},
		{render.AnchorBottomCenter, layout.NewRegion(50, 180, 70, 220)},
		{render.AnchorBottomRight, layout.NewRegion(90, 180, 110, 220)},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			got := render.AlignInRegion(20, 40, region, tt.anchor)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("aligned box mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlignInRegionOverhang(t *testing.T) {
	region := layout.NewRegion(0, 0, 50, 50)
	// A box larger than the region overhangs on the non-anchored sides.
	got := render.AlignInRegion(100, 100, region, render.AnchorBottomRight)
	assert.Equal(t, layout.NewRegion(-50, -50, 50, 50), got)
}

func TestAnchorPoint(t *testing.T) {
	region := layout.NewRegion(10, 20, 110, 220)
	assert.Equal(t, render.Point{X: 10, Y: 20}, render.AnchorTopLeft.Point(region))
	assert.Equal(t, render.Point{X: 60, Y: 120}, render.AnchorCenter.Point(region))
	assert.Equal(t, render.Point{X: 110, Y: 20}, render.AnchorTopRight.Point(region))
	assert.Equal(t, render.Point{X: 60, Y: 220}, render.AnchorBottomCenter.Point(region))
}

func TestAnchorString(t *testing.T) {
	assert.Equal(t, "top-left", render.AnchorTopLeft.String())
	assert.Equal(t, "center", render.AnchorCenter.String())
	assert.Equal(t, "middle-right", render.AnchorMiddleRight.String())
	assert.Equal(t, "bottom-center", render.AnchorBottomCenter.String())
}

func TestFitRegion(t *testing.T) {
	region := layout.NewRegion(0, 0, 100, 200)

	// A 2:1 source is width-bound: scale 1, centered vertically.
	got := render.FitRegion(100, 50, region, render.AnchorCenter)
	assert.Equal(t, layout.NewRegion(0, 75, 100, 125), got)

	// Anchored at the top instead.
	got = render.FitRegion(100, 50, region, render.AnchorTopCenter)
	assert.Equal(t, layout.NewRegion(0, 0, 100, 50), got)
}

func TestCoverRegionOverhangs(t *testing.T) {
	region := layout.NewRegion(0, 0, 100, 200)

	// Covering scales the 2:1 source by the height: 400x200, centered.
	got := render.CoverRegion(100, 50, region, render.AnchorCenter)
	assert.Equal(t, layout.NewRegion(-150, 0, 250, 200), got)
}

func TestScaleModeApply(t *testing.T) {
	region := layout.NewRegion(0, 0, 100, 200)

	assert.Equal(t, region, render.ScaleStretch.Apply(10, 10, region, render.AnchorCenter))
	assert.Equal(t,
		render.FitRegion(10, 10, region, render.AnchorCenter),
		render.ScaleFit.Apply(10, 10, region, render.AnchorCenter),
	)
	assert.Equal(t,
		render.CoverRegion(10, 10, region, render.AnchorCenter),
		render.ScaleCover.Apply(10, 10, region, render.AnchorCenter),
	)
}

func TestScaleDegenerateSourceCollapses(t *testing.T) {
	region := layout.NewRegion(0, 0, 100, 200)
	got := render.FitRegion(0, 50, region, render.AnchorCenter)
	assert.Equal(t, layout.NewRegion(50, 100, 50, 100), got)
	assert.Zero(t, got.Width())
	assert.Zero(t, got.Height())
}

func TestPadRegion(t *testing.T) {
	region := layout.NewRegion(0, 0, 200, 100)
	inset := layout.NewInset(layout.Px(10), layout.Percent(10), layout.Px(5), layout.Percent(25))

	// Percent sides resolve against the region's own dimensions.
	got, err := render.PadRegion(region, inset, 96)
	require.NoError(t, err)
	assert.Equal(t, layout.NewRegion(10, 10, 195, 75), got)
}

func TestPadRegionNeedsDPIForPhysicalSides(t *testing.T) {
	region := layout.NewRegion(0, 0, 200, 100)
	_, err := render.PadRegion(region, layout.UniformInset(layout.Mm(10)), 0)
	var missing *layout.MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "dpi", missing.Context)
}
