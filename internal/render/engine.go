package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// Engine encodes content into a QR symbol. Implementations wrap third-party
// QR libraries and must be deterministic and safe for concurrent use.
type Engine interface {
	Name() string
	Encode(content string, level settings.Level) (Symbol, error)
}

// Symbol is an encoded QR code that can be rasterized.
type Symbol interface {
	Matrix() *Matrix
	// WritePNG rasterizes the symbol as a square PNG of side
	// Matrix().ImageSide(style.Scale, style.Border).
	WritePNG(w io.Writer, style Style) error
}

// Style holds the rasterization parameters derived from a settings.Config.
type Style struct {
	Scale  int
	Border int
	Dark   color.NRGBA
	Light  color.NRGBA
}

// StyleOf extracts the raster style from cfg.
func StyleOf(cfg settings.Config) Style {
	return Style{
		Scale:  cfg.Scale,
		Border: cfg.Border,
		Dark:   cfg.Dark(),
		Light:  cfg.Light(),
	}
}

// NewEngine returns the engine registered under name ("yeqown", "skip2" or
// "boombuler").
// An empty name selects the default engine.
func NewEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yeqown":
		return Yeqown{}, nil
	case "skip2":
		return Skip2{}, nil
	case "boombuler":
		return Boombuler{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}
