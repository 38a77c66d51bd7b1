package render

import (
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// Boombuler encodes with github.com/boombuler/barcode in byte mode. Its
// symbols are one pixel per module, so they are rasterized by Rasterize.
type Boombuler struct{}

func (Boombuler) Name() string { return "boombuler" }

func (Boombuler) Encode(content string, level settings.Level) (Symbol, error) {
	code, err := qr.Encode(content, boombulerLevel(level), qr.Unicode)
	if err != nil {
		return nil, err
	}
	return bitmapSymbol{matrix: barcodeMatrix(code)}, nil
}

// barcodeMatrix reads the modules of an unscaled barcode image.
func barcodeMatrix(code barcode.Barcode) *Matrix {
	b := code.Bounds()
	m := NewMatrix(b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.Set(x, y, r == 0)
		}
	}
	return m
}

func boombulerLevel(l settings.Level) qr.ErrorCorrectionLevel {
	switch l {
	case settings.LevelL:
		return qr.L
	case settings.LevelM:
		return qr.M
	case settings.LevelQ:
		return qr.Q
	default:
		return qr.H
	}
}
