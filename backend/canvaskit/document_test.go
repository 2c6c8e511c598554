// backend/canvaskit/document_test.go
package canvaskit_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/formeset/platen/backend/canvaskit"
	"github.com/formeset/platen/layout"
	"github.com/formeset/platen/render"
	"github.com/formeset/platen/text"
)

var _ render.Surface = (*canvaskit.Surface)(nil)

func newDocumentPage(t *testing.T, w, h float64) (*canvaskit.Document, *canvaskit.Surface) {
	t.Helper()
	doc := canvaskit.NewDocument(newLibrary(t), layout.DefaultDPI)
	surf, err := doc.AddPage(w, h, 0)
	require.NoError(t, err)
	return doc, surf
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}

func TestDocumentWritePDF(t *testing.T) {
	page := layout.NewElement()
	page.SetSize(layout.NewMeasure(layout.Px(320), layout.Px(200)))

	body := layout.NewElement()
	body.SetAlignment(layout.AlignFill)
	body.SetMargin(layout.UniformInset(layout.Px(10)))
	require.NoError(t, page.AddChild(body))

	white := render.Color{R: 255, G: 255, B: 255, A: 255}
	ink := render.Color{R: 20, G: 20, B: 20, A: 255}
	items := []render.Item{
		&render.RectItem{Element: page, Style: render.RectStyle{Fill: &white}},
		&render.RectItem{Element: body, Style: render.RectStyle{
			Stroke: &render.Stroke{Color: ink, Width: 1},
		}},
		&render.TextItem{
			Element: body,
			Content: "platen",
			Font:    text.Font{Family: canvaskit.FallbackFamily, SizePoints: 18},
			Color:   ink,
			Anchor:  render.AnchorCenter,
		},
		&render.LineItem{
			Element: body,
			From:    render.AnchorMiddleLeft,
			To:      render.AnchorMiddleRight,
			Stroke:  render.Stroke{Color: ink, Width: 0.5},
		},
		&render.ImageItem{
			Element: body,
			Image:   testImage(16, 16),
			Mode:    render.ScaleFit,
			Anchor:  render.AnchorBottomRight,
		},
	}

	doc, surf := newDocumentPage(t, 320, 200)
	r := render.NewRenderer(canvaskit.NewMeasurer(newLibrary(t)), zaptest.NewLogger(t))
	require.NoError(t, r.Render(surf, items))

	var buf bytes.Buffer
	require.NoError(t, doc.WritePDF(&buf, canvaskit.Meta{
		Title:    "document test",
		Keywords: []string{"layout", "pdf"},
	}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output must start with the PDF magic")
	assert.Greater(t, buf.Len(), 500)
}

func TestDocumentMultiplePages(t *testing.T) {
	doc := canvaskit.NewDocument(newLibrary(t), layout.DefaultDPI)

	first, err := doc.AddPage(100, 100, 0)
	require.NoError(t, err)
	second, err := doc.AddPage(200, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())

	red := render.Color{R: 255, A: 255}
	box := layout.NewRegion(10, 10, 90, 90)
	require.NoError(t, first.DrawRect(box, render.RectStyle{Fill: &red}))
	require.NoError(t, second.DrawRect(box, render.RectStyle{Fill: &red}))

	var buf bytes.Buffer
	require.NoError(t, doc.WritePDF(&buf, canvaskit.Meta{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestDocumentWritePNG(t *testing.T) {
	doc, surf := newDocumentPage(t, 160, 90)

	white := render.Color{R: 255, G: 255, B: 255, A: 255}
	blue := render.Color{B: 200, A: 255}
	require.NoError(t, surf.DrawRect(layout.NewRegion(0, 0, 160, 90), render.RectStyle{Fill: &white}))
	require.NoError(t, surf.DrawRect(layout.NewRegion(20, 20, 140, 70), render.RectStyle{Fill: &blue}))

	var buf bytes.Buffer
	require.NoError(t, doc.WritePNG(&buf, 0))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.InDelta(t, 160, img.Bounds().Dx(), 1, "raster width should match the pixel page size")
	assert.InDelta(t, 90, img.Bounds().Dy(), 1)
}

func TestDocumentPerPageDPI(t *testing.T) {
	doc := canvaskit.NewDocument(newLibrary(t), 96)

	_, err := doc.AddPage(160, 90, 192)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WritePNG(&buf, 0))
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	// A denser page is physically smaller but still rasterizes pixel for pixel.
	assert.InDelta(t, 160, img.Bounds().Dx(), 1)
	assert.InDelta(t, 90, img.Bounds().Dy(), 1)
}

func TestDocumentErrors(t *testing.T) {
	doc := canvaskit.NewDocument(newLibrary(t), layout.DefaultDPI)

	_, err := doc.AddPage(0, 100, 0)
	var cfgErr *layout.InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)

	var buf bytes.Buffer
	err = doc.WritePDF(&buf, canvaskit.Meta{})
	require.ErrorAs(t, err, &cfgErr, "an empty document cannot be serialized")

	assert.Error(t, doc.WritePNG(&buf, 0))
	assert.Error(t, doc.WritePNG(&buf, -1))
}

func TestDocumentDefaultDPI(t *testing.T) {
	doc := canvaskit.NewDocument(newLibrary(t), 0)
	assert.Equal(t, layout.DefaultDPI, doc.DPI())
}

func TestSurfaceTextDecorations(t *testing.T) {
	_, surf := newDocumentPage(t, 200, 100)

	font := text.Font{
		Family:     canvaskit.FallbackFamily,
		SizePoints: 14,
		Style:      text.StyleUnderline | text.StyleStrikethrough | text.StyleOverline,
	}
	ink := render.Color{A: 255}
	err := surf.DrawText(layout.NewRegion(0, 0, 200, 100), "decorated", font, ink, render.AnchorCenter)
	require.NoError(t, err)
}

func TestSurfaceSkipsDegenerateShapes(t *testing.T) {
	_, surf := newDocumentPage(t, 100, 100)

	red := render.Color{R: 255, A: 255}
	// A child overconstrained into negative size resolves to an inverted
	// region; drawing it must be a quiet no-op.
	inverted := layout.NewRegion(80, 80, 20, 20)
	require.NoError(t, surf.DrawRect(inverted, render.RectStyle{Fill: &red}))
	require.NoError(t, surf.DrawImage(inverted, testImage(4, 4)))
	require.NoError(t, surf.DrawText(inverted, "", text.Font{SizePoints: 10}, red, render.AnchorCenter))
}

func TestSurfaceImageResample(t *testing.T) {
	_, surf := newDocumentPage(t, 100, 100)

	// 4:1 region over a square source forces the resample path.
	err := surf.DrawImage(layout.NewRegion(0, 0, 80, 20), testImage(10, 10))
	require.NoError(t, err)
}

func TestSurfaceNilImage(t *testing.T) {
	_, surf := newDocumentPage(t, 100, 100)
	assert.Error(t, surf.DrawImage(layout.NewRegion(0, 0, 50, 50), nil))
}
