package render

import (
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// Yeqown encodes with github.com/yeqown/go-qrcode and rasterizes through its
// standard image writer.
type Yeqown struct{}

func (Yeqown) Name() string { return "yeqown" }

// Encode builds the symbol in byte mode at the requested level.
func (Yeqown) Encode(content string, level settings.Level) (Symbol, error) {
	qrc, err := qrcode.NewWith(content,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		yeqownLevel(level),
	)
	if err != nil {
		return nil, err
	}

	capture := &matrixWriter{}
	if err := qrc.Save(capture); err != nil {
		return nil, err
	}
	return &yeqownSymbol{qrc: qrc, matrix: capture.matrix}, nil
}

func yeqownLevel(l settings.Level) qrcode.EncodeOption {
	switch l {
	case settings.LevelL:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case settings.LevelM:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case settings.LevelQ:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
}

type yeqownSymbol struct {
	qrc    *qrcode.QRCode
	matrix *Matrix
}

func (s *yeqownSymbol) Matrix() *Matrix { return s.matrix }

func (s *yeqownSymbol) WritePNG(w io.Writer, style Style) error {
	opts := []standard.ImageOption{
		standard.WithQRWidth(uint8(style.Scale)),
		standard.WithBorderWidth(style.Border * style.Scale),
		standard.WithFgColor(style.Dark),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}
	if style.Light.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(style.Light))
	}
	return s.qrc.Save(standard.NewWithWriter(nopCloser{w}, opts...))
}

// matrixWriter is a qrcode.Writer that copies the module grid instead of
// drawing it.
type matrixWriter struct {
	matrix *Matrix
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	m := NewMatrix(mat.Width())
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		m.Set(x, y, v.IsSet())
	})
	w.matrix = m
	return nil
}

func (w *matrixWriter) Close() error { return nil }

// nopCloser lets the standard writer close the stream without closing the
// caller's writer.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
