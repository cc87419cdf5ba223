package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color packed as 0xRRGGBB.
// ColorDefault means "terminal default" and is never produced by parsing.
type Color int32

// ColorDefault leaves the cell in the terminal's default foreground.
const ColorDefault Color = -1

// RGB builds a color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// Hex returns the color as a "#rrggbb" string for the styled renderer.
func (c Color) Hex() string {
	if c == ColorDefault {
		return ""
	}
	return fmt.Sprintf("#%06x", int32(c))
}

// namedColors covers the handful of CSS-style names that show up in
// hand-written configuration documents.
var namedColors = map[string]Color{
	"black":   RGB(0x00, 0x00, 0x00),
	"white":   RGB(0xff, 0xff, 0xff),
	"red":     RGB(0xff, 0x00, 0x00),
	"green":   RGB(0x00, 0x80, 0x00),
	"blue":    RGB(0x00, 0x00, 0xff),
	"yellow":  RGB(0xff, 0xff, 0x00),
	"orange":  RGB(0xff, 0xa5, 0x00),
	"purple":  RGB(0x80, 0x00, 0x80),
	"magenta": RGB(0xff, 0x00, 0xff),
	"cyan":    RGB(0x00, 0xff, 0xff),
	"gray":    RGB(0x80, 0x80, 0x80),
	"grey":    RGB(0x80, 0x80, 0x80),
}

// ParseColor parses a configuration color string into a Color.
// Accepted forms: "#rgb", "#rrggbb", "0xRRGGBB", "rgb(r,g,b)" and a small
// set of color names. Returns an error for anything else.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ColorDefault, fmt.Errorf("core: empty color string")
	}

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBTriple(s[4 : len(s)-1])
	}

	hex := s
	switch {
	case strings.HasPrefix(hex, "0x"):
		hex = "#" + hex[2:]
	case !strings.HasPrefix(hex, "#"):
		hex = "#" + hex
	}

	// Expand shorthand "#rgb" before handing to colorful.
	if len(hex) == 4 {
		hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
	}

	col, err := colorful.Hex(hex)
	if err != nil {
		return ColorDefault, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB(r, g, b), nil
}

// parseRGBTriple parses the body of an "rgb(r,g,b)" expression.
func parseRGBTriple(body string) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return ColorDefault, fmt.Errorf("core: invalid rgb() triple %q", body)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return ColorDefault, fmt.Errorf("core: invalid rgb() component %q", p)
		}
		ch[i] = uint8(v)
	}
	return RGB(ch[0], ch[1], ch[2]), nil
}

// ColorOr parses a configuration color, falling back to the given color on
// any parse failure. Configuration errors are never fatal.
func ColorOr(s string, fallback Color) Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
