// backend/canvaskit/library.go
package canvaskit

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/formeset/platen/text"
)

// FallbackFamily is the embedded family every library starts with and the
// one unknown families resolve to.
const FallbackFamily = "Go"

// Library holds loaded font families and answers face requests. Lookups
// that miss fall back to the embedded Go family, so measurement and drawing
// always have a face to work with. Safe for concurrent use.
type Library struct {
	// mu guards the family map and every canvas font interaction: canvas
	// font objects are not documented as goroutine safe, so shaping and
	// glyph extraction serialize through it as well.
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewLibrary builds a library preloaded with the embedded Go family in its
// regular, bold, italic and bold-italic cuts.
func NewLibrary() (*Library, error) {
	l := &Library{families: map[string]*canvas.FontFamily{}}

	cuts := []struct {
		data  []byte
		style canvas.FontStyle
	}{
		{goregular.TTF, canvas.FontRegular},
		{gobold.TTF, canvas.FontBold},
		{goitalic.TTF, canvas.FontItalic},
		{gobolditalic.TTF, canvas.FontBold | canvas.FontItalic},
	}
	for _, cut := range cuts {
		if err := l.Register(FallbackFamily, cut.data, cut.style); err != nil {
			return nil, fmt.Errorf("loading embedded fallback: %w", err)
		}
	}
	return l, nil
}

// Register adds one font cut (TTF/OTF bytes) to a family, creating the
// family on first use.
func (l *Library) Register(family string, data []byte, style canvas.FontStyle) error {
	if family == "" {
		return fmt.Errorf("font family name is empty")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strings.ToLower(family)
	ff, ok := l.families[key]
	if !ok {
		ff = canvas.NewFontFamily(family)
		l.families[key] = ff
	}
	if err := ff.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("loading font into family %q: %w", family, err)
	}
	return nil
}

// RegisterFile reads a font file and registers it under the family.
func (l *Library) RegisterFile(family, path string, style canvas.FontStyle) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font file: %w", err)
	}
	return l.Register(family, data, style)
}

// RegisterDir loads every .ttf and .otf file directly under dir. Family and
// cut come from the file name: "Inter-Bold.ttf" registers the bold cut of
// family "Inter", a stem without a dash registers a regular cut. Returns
// the file names registered, sorted by directory order.
func (l *Library) RegisterDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading font directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		family, style := cutFromFileName(entry.Name())
		if err := l.RegisterFile(family, filepath.Join(dir, entry.Name()), style); err != nil {
			return loaded, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		loaded = append(loaded, entry.Name())
	}
	return loaded, nil
}

// cutFromFileName splits "Family-Cut.ttf" into the family name and the
// canvas style of the cut. Unknown cut names keep the whole stem as the
// family and register a regular cut, so nothing is silently dropped.
func cutFromFileName(name string) (string, canvas.FontStyle) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	dash := strings.LastIndex(stem, "-")
	if dash <= 0 {
		return stem, canvas.FontRegular
	}
	style, ok := cutStyles[strings.ToLower(stem[dash+1:])]
	if !ok {
		return stem, canvas.FontRegular
	}
	return stem[:dash], style
}

var cutStyles = map[string]canvas.FontStyle{
	"regular":        canvas.FontRegular,
	"italic":         canvas.FontItalic,
	"light":          canvas.FontLight,
	"lightitalic":    canvas.FontLight | canvas.FontItalic,
	"medium":         canvas.FontMedium,
	"mediumitalic":   canvas.FontMedium | canvas.FontItalic,
	"semibold":       canvas.FontSemiBold,
	"semibolditalic": canvas.FontSemiBold | canvas.FontItalic,
	"bold":           canvas.FontBold,
	"bolditalic":     canvas.FontBold | canvas.FontItalic,
	"extrabold":      canvas.FontExtraBold,
	"black":          canvas.FontBlack,
	"blackitalic":    canvas.FontBlack | canvas.FontItalic,
}

// Families lists the registered family names, sorted.
func (l *Library) Families() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.families))
	for _, ff := range l.families {
		names = append(names, ff.Name())
	}
	sort.Strings(names)
	return names
}

// face builds a canvas face for the font at its point size in the given
// color, falling back to the embedded family when the requested one is not
// registered. Callers must hold l.mu.
func (l *Library) face(f text.Font, col color.Color) (*canvas.FontFace, error) {
	ff, ok := l.families[strings.ToLower(f.Family)]
	if !ok {
		ff = l.families[strings.ToLower(FallbackFamily)]
	}
	if ff == nil {
		return nil, fmt.Errorf("font family %q is not registered and no fallback is loaded", f.Family)
	}
	return ff.Face(f.SizePoints, col, fontStyle(f), canvas.FontNormal), nil
}

// fontStyle maps the numeric weight and style flags onto the canvas style
// set. Unloaded cuts are substituted by canvas with the nearest loaded one.
func fontStyle(f text.Font) canvas.FontStyle {
	var s canvas.FontStyle
	switch {
	case f.Weight >= text.WeightBlack:
		s = canvas.FontBlack
	case f.Weight >= text.WeightExtraBold:
		s = canvas.FontExtraBold
	case f.Weight >= text.WeightBold:
		s = canvas.FontBold
	case f.Weight >= text.WeightSemiBold:
		s = canvas.FontSemiBold
	case f.Weight >= text.WeightMedium:
		s = canvas.FontMedium
	case f.Weight > 0 && f.Weight <= text.WeightLight:
		s = canvas.FontLight
	default:
		s = canvas.FontRegular
	}
	if f.Style.Has(text.StyleItalic) {
		s |= canvas.FontItalic
	}
	return s
}
