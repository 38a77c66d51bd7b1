package render

import (
	"image/png"
	"io"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// Skip2 encodes with github.com/skip2/go-qrcode. The library only scales to a
// target pixel size, so its bitmap is rasterized by Rasterize instead.
type Skip2 struct{}

func (Skip2) Name() string { return "skip2" }

func (Skip2) Encode(content string, level settings.Level) (Symbol, error) {
	q, err := skipqrcode.New(content, skip2Level(level))
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return bitmapSymbol{matrix: MatrixFromBitmap(q.Bitmap())}, nil
}

func skip2Level(l settings.Level) skipqrcode.RecoveryLevel {
	switch l {
	case settings.LevelL:
		return skipqrcode.Low
	case settings.LevelM:
		return skipqrcode.Medium
	case settings.LevelQ:
		return skipqrcode.High
	default:
		return skipqrcode.Highest
	}
}

// bitmapSymbol is a symbol known only by its matrix.
type bitmapSymbol struct {
	matrix *Matrix
}

func (s bitmapSymbol) Matrix() *Matrix { return s.matrix }

func (s bitmapSymbol) WritePNG(w io.Writer, style Style) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, Rasterize(s.matrix, style))
}
