// dsl/fuzz_test.go
package dsl_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formeset/platen/dsl"
)

// FuzzParseDocument checks that arbitrary input never panics the parser and
// that whatever it accepts can be lowered without panicking either.
func FuzzParseDocument(f *testing.F) {
	f.Add("page 100 100 {}\n")
	f.Add(sampleDocument)
	f.Add("meta { title: \"x\" }\npage 10 10 { box at top-left size 50% 50% }\n")
	f.Add("page 612px 792px dpi 96 {\n  text \"hi\" fit\n}\n")
	f.Add("page 10 10 { grid 2 2 { cell 0 0 { rect } } }\n")
	f.Add("page {")
	f.Add("")

	stub := func(string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	f.Fuzz(func(t *testing.T, input string) {
		doc, err := dsl.ParseString(input)
		if err != nil {
			return
		}
		require.NotEmpty(t, doc.Pages, "the grammar requires at least one page")

		// Lowering may reject the document, but only ever with an error.
		_, _ = dsl.Build(doc, dsl.WithImageLoader(stub))
	})
}
