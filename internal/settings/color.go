package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor converts "#RGB", "#RRGGBB" or the same with an alpha digit pair
// ("#RGBA", "#RRGGBBAA") into a color. The leading '#' is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	// Expand the short forms
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexColor formats c as "#RRGGBB", dropping alpha when opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// normalizeColor upper-cases a valid hex color into its canonical form so
// equal colors compare equal regardless of how they were typed.
func normalizeColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return s
	}
	return HexColor(c)
}
