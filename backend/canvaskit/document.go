// backend/canvaskit/document.go

// Package canvaskit is the drawing back-end of platen. It implements
// render.Surface and text.Measurer on top of github.com/tdewolff/canvas,
// holding fonts in a Library and pages in a Document that can be written
// out as PDF or PNG. The layout core stays unit-pure; everything
// device-specific lives here.
package canvaskit

import (
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/formeset/platen/layout"
)

// Meta is the document information block written into PDF output.
type Meta struct {
	Title    string
	Subject  string
	Keywords []string
	Author   string
	Creator  string
}

type page struct {
	c   *canvas.Canvas
	wMM float64
	hMM float64
	dpi float64
}

// Document accumulates drawn pages and serializes them. Pages are sized in
// pixels at the document density and mapped to physical millimeters on
// output, so a 96 DPI document prints at its on-screen proportions.
type Document struct {
	lib   *Library
	dpi   float64
	pages []page
}

// NewDocument builds an empty document drawing from the given font library.
// A non-positive dpi falls back to the default density.
func NewDocument(lib *Library, dpi float64) *Document {
	if dpi <= 0 {
		dpi = layout.DefaultDPI
	}
	return &Document{lib: lib, dpi: dpi}
}

// DPI reports the document density.
func (d *Document) DPI() float64 { return d.dpi }

// PageCount reports how many pages have been added.
func (d *Document) PageCount() int { return len(d.pages) }

// AddPage appends a blank page of the given pixel dimensions and returns
// the surface that draws onto it. Pages may carry their own density; a
// non-positive dpi inherits the document's, and the physical size of the
// page follows whichever applies.
func (d *Document) AddPage(widthPx, heightPx, dpi float64) (*Surface, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, layout.NewInvalidConfigError("page dimensions must be positive")
	}
	if dpi <= 0 {
		dpi = d.dpi
	}
	wMM := pxToMM(widthPx, dpi)
	hMM := pxToMM(heightPx, dpi)
	c := canvas.New(wMM, hMM)
	d.pages = append(d.pages, page{c: c, wMM: wMM, hMM: hMM, dpi: dpi})
	return newSurface(canvas.NewContext(c), d.lib, dpi), nil
}

// WritePDF serializes every page into a single PDF.
func (d *Document) WritePDF(w io.Writer, meta Meta) error {
	if len(d.pages) == 0 {
		return layout.NewInvalidConfigError("document has no pages")
	}
	creator := meta.Creator
	if creator == "" {
		creator = "platen"
	}

	writer := pdf.New(w, d.pages[0].wMM, d.pages[0].hMM, nil)
	for i, p := range d.pages {
		if i > 0 {
			writer.NewPage(p.wMM, p.hMM)
		}
		p.c.RenderTo(writer)
	}
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, creator)
	return writer.Close()
}

// WritePNG rasterizes one page at its own density and encodes it, so one
// layout pixel lands on one image pixel.
func (d *Document) WritePNG(w io.Writer, index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("page %d does not exist in a document of %d pages", index, len(d.pages))
	}
	p := d.pages[index]
	img := rasterizer.Draw(p.c, canvas.DPMM(p.dpi/25.4), canvas.DefaultColorSpace)
	return png.Encode(w, img)
}
