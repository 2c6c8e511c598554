// render/color.go
package render

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

// -- Color --

// Color is a non-premultiplied RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA implements image/color.Color.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns the color as a standard library value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// String renders the color as "#rrggbb", with an alpha pair appended when it
// is not fully opaque.
func (c Color) String() string {
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"transparent": {0, 0, 0, 0},
}

var rgbFuncPattern = regexp.MustCompile(`^rgba?\((.*)\)$`)

// ParseColor parses a color literal: a name from a small built-in palette,
// a "#rgb"/"#rgba"/"#rrggbb"/"#rrggbbaa" hex form, or an "rgb(...)"
// / "rgba(...)" functional form with 0-255 or percentage components.
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))

	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(value, v)
	}
	if m := rgbFuncPattern.FindStringSubmatch(v); m != nil {
		return parseRGBColor(value, m[1])
	}
	return Color{}, fmt.Errorf("cannot parse color %q", value)
}

func parseHexColor(original, v string) (Color, error) {
	hex := strings.TrimPrefix(v, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, fmt.Errorf("cannot parse color %q", original)
		}
	}

	c := Color{A: 255}
	switch len(hex) {
	case 3:
		c.R, c.G, c.B = hexDigit(hex[0])*17, hexDigit(hex[1])*17, hexDigit(hex[2])*17
	case 4:
		c.R, c.G, c.B = hexDigit(hex[0])*17, hexDigit(hex[1])*17, hexDigit(hex[2])*17
		c.A = hexDigit(hex[3]) * 17
	case 6:
		c.R = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		c.G = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		c.B = hexDigit(hex[4])<<4 | hexDigit(hex[5])
	case 8:
		c.R = hexDigit(hex[0])<<4 | hexDigit(hex[1])
		c.G = hexDigit(hex[2])<<4 | hexDigit(hex[3])
		c.B = hexDigit(hex[4])<<4 | hexDigit(hex[5])
		c.A = hexDigit(hex[6])<<4 | hexDigit(hex[7])
	default:
		return Color{}, fmt.Errorf("cannot parse color %q", original)
	}
	return c, nil
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func hexDigit(b byte) uint8 {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func parseRGBColor(original, inner string) (Color, error) {
	parts := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	components := parts[:0]
	for _, p := range parts {
		if p != "" {
			components = append(components, p)
		}
	}
	if len(components) < 3 || len(components) > 4 {
		return Color{}, fmt.Errorf("cannot parse color %q", original)
	}

	c := Color{A: 255}
	var err error
	if c.R, err = parseColorComponent(components[0], false); err != nil {
		return Color{}, fmt.Errorf("cannot parse color %q", original)
	}
	if c.G, err = parseColorComponent(components[1], false); err != nil {
		return Color{}, fmt.Errorf("cannot parse color %q", original)
	}
	if c.B, err = parseColorComponent(components[2], false); err != nil {
		return Color{}, fmt.Errorf("cannot parse color %q", original)
	}
	if len(components) == 4 {
		if c.A, err = parseColorComponent(components[3], true); err != nil {
			return Color{}, fmt.Errorf("cannot parse color %q", original)
		}
	}
	return c, nil
}

// parseColorComponent reads one rgb() component: a percentage, a 0-255
// integer, or for the alpha channel a 0-1 fraction.
func parseColorComponent(value string, isAlpha bool) (uint8, error) {
	if strings.HasSuffix(value, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clamp255(percent / 100.0 * 255.0), nil
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if isAlpha {
		return clamp255(num * 255.0), nil
	}
	return clamp255(num), nil
}

func clamp255(v float64) uint8 {
	v += 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
