// layout/fuzz_test.go
package layout_test

import (
	"math"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formeset/platen/layout"
)

// FuzzParseLength checks that arbitrary input never panics the parser and
// that everything it accepts survives a format/reparse round trip.
func FuzzParseLength(f *testing.F) {
	f.Add("12.5mm")
	f.Add(" 50% ")
	f.Add("-3.5in")
	f.Add("96px")
	f.Add("42")
	f.Add("")
	f.Add("1.2.3mm")

	f.Fuzz(func(t *testing.T, input string) {
		parsed, err := layout.ParseLength(input)
		if err != nil {
			var parseErr *layout.ParseError
			require.ErrorAs(t, err, &parseErr)
			return
		}
		if math.IsNaN(parsed.Value) {
			return
		}
		back, err := layout.ParseLength(parsed.String())
		require.NoError(t, err, "formatted %q did not reparse", parsed)
		assert.Equal(t, parsed, back)
	})
}

// fuzzLength is the raw material GenerateStruct fills in before it is
// clamped into a valid Length.
type fuzzLength struct {
	Value float64
	Unit  uint8
}

func (fl fuzzLength) length() layout.Length {
	units := []layout.Unit{layout.UnitPixel, layout.UnitInch, layout.UnitMillimeter, layout.UnitPercent}
	return layout.Length{Value: fl.Value, Unit: units[int(fl.Unit)%len(units)]}
}

// tame reports whether the value is finite and small enough that resolver
// arithmetic cannot overflow into Inf or NaN.
func (fl fuzzLength) tame() bool {
	return !math.IsNaN(fl.Value) && math.Abs(fl.Value) <= 1e6
}

type fuzzChildSpec struct {
	Alignment uint8
	DPI       float64
	Padding   [4]fuzzLength
	Margin    [4]fuzzLength
	Size      [2]fuzzLength
}

// FuzzResolveRegion builds a page with a fuzzed child and checks that
// resolution over a concrete root never fails or panics, and that repeated
// resolution is stable.
func FuzzResolveRegion(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzz.NewConsumer(data)
		spec := &fuzzChildSpec{}
		if err := consumer.GenerateStruct(spec); err != nil {
			return
		}
		for _, fl := range spec.Padding {
			if !fl.tame() {
				return
			}
		}
		for _, fl := range spec.Margin {
			if !fl.tame() {
				return
			}
		}
		for _, fl := range spec.Size {
			if !fl.tame() {
				return
			}
		}
		if math.IsNaN(spec.DPI) || spec.DPI > 1e4 {
			return
		}

		page := layout.NewElement()
		page.SetSize(layout.NewMeasure(layout.Px(612), layout.Px(792)))
		page.SetPadding(layout.NewInset(
			spec.Padding[0].length(), spec.Padding[1].length(),
			spec.Padding[2].length(), spec.Padding[3].length(),
		))

		child := layout.NewElement()
		child.SetAlignment(layout.Alignment(int(spec.Alignment) % 5))
		child.SetDPI(spec.DPI)
		child.SetMargin(layout.NewInset(
			spec.Margin[0].length(), spec.Margin[1].length(),
			spec.Margin[2].length(), spec.Margin[3].length(),
		))
		child.SetSize(layout.NewMeasure(spec.Size[0].length(), spec.Size[1].length()))
		require.NoError(t, page.AddChild(child))

		// A concrete pixel root supplies every context a child can need, so
		// resolution must always succeed.
		first, err := child.GetAbsoluteRegion()
		require.NoError(t, err)

		second, err := child.GetAbsoluteRegion()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
