package render

import (
	"image"
	"image/color"
)

// Rasterize draws m as a two-color paletted image: index 0 is the light
// color, index 1 the dark one.
func Rasterize(m *Matrix, style Style) *image.Paletted {
	side := m.ImageSide(style.Scale, style.Border)
	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{style.Light, style.Dark})
	if side == 0 {
		return img
	}

	offset := style.Border * style.Scale
	for my := 0; my < m.Size(); my++ {
		top := offset + my*style.Scale
		row := img.Pix[top*img.Stride : top*img.Stride+side]
		for mx := 0; mx < m.Size(); mx++ {
			if !m.Dark(mx, my) {
				continue
			}
			left := offset + mx*style.Scale
			for i := left; i < left+style.Scale; i++ {
				row[i] = 1
			}
		}
		// Every pixel row of a module row is identical.
		for dy := 1; dy < style.Scale; dy++ {
			start := (top + dy) * img.Stride
			copy(img.Pix[start:start+side], row)
		}
	}
	return img
}
