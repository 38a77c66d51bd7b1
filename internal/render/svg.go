package render

import (
	"bytes"
	"fmt"
	"image/color"
)

// SVG renders m as a vector image with the same geometry as the raster
// output. Horizontal runs of dark modules are merged into one rect.
func SVG(m *Matrix, style Style) []byte {
	side := m.ImageSide(style.Scale, style.Border)
	offset := style.Border * style.Scale

	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" shape-rendering="crispEdges">`,
		side, side, side, side)

	// Background
	if style.Light.A > 0 {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"%s/>`,
			side, side, svgColor(style.Light), svgOpacity(style.Light))
	}

	fill := svgColor(style.Dark)
	opacity := svgOpacity(style.Dark)
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); {
			if !m.Dark(x, y) {
				x++
				continue
			}
			run := 1
			for m.Dark(x+run, y) {
				run++
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"%s/>`,
				offset+x*style.Scale, offset+y*style.Scale, run*style.Scale, style.Scale, fill, opacity)
			x += run
		}
	}

	b.WriteString(`</svg>`)
	return b.Bytes()
}

func svgColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(c color.NRGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` fill-opacity="%.3f"`, float64(c.A)/255)
}
