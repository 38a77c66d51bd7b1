// Package settings holds the per-use-case render settings of one user
// session: committed values used for rendering and staged edits waiting for
// an explicit apply.
package settings

import (
	"image/color"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// Bounds enforced on every config.
const (
	MinScale  = 5
	MaxScale  = 40
	MinBorder = 0
	MaxBorder = 10
)

// Config controls how a QR symbol is rasterized.
type Config struct {
	DotColor        string `json:"dot_color" validate:"required,hexcolor"`
	BackgroundColor string `json:"background_color" validate:"required,hexcolor"`
	// Scale is the side of one module in pixels.
	Scale int `json:"scale" validate:"min=5,max=40"`
	// Border is the quiet zone width in modules.
	Border          int   `json:"border" validate:"min=0,max=10"`
	ErrorCorrection Level `json:"error_correction" validate:"required,oneof=L M Q H"`
}

// Default is black dots on white, scale 10, border 2, level H.
func Default() Config {
	return Config{
		DotColor:        "#000000",
		BackgroundColor: "#FFFFFF",
		Scale:           10,
		Border:          2,
		ErrorCorrection: LevelH,
	}
}

// Validate reports every out-of-range or malformed field.
func (c Config) Validate() error {
	return validation.Struct(c)
}

// Dark returns the parsed dot color.
func (c Config) Dark() color.NRGBA {
	rgba, err := ParseColor(c.DotColor)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return rgba
}

// Light returns the parsed background color.
func (c Config) Light() color.NRGBA {
	rgba, err := ParseColor(c.BackgroundColor)
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return rgba
}

// Edits is a partial change to a Config. Nil fields are left untouched.
type Edits struct {
	DotColor        *string `json:"dot_color,omitempty" form:"dot_color"`
	BackgroundColor *string `json:"background_color,omitempty" form:"background_color"`
	Scale           *int    `json:"scale,omitempty" form:"scale"`
	Border          *int    `json:"border,omitempty" form:"border"`
	ErrorCorrection *string `json:"error_correction,omitempty" form:"error_correction"`
}

// Empty reports whether e changes nothing.
func (e Edits) Empty() bool {
	return e.DotColor == nil && e.BackgroundColor == nil && e.Scale == nil &&
		e.Border == nil && e.ErrorCorrection == nil
}

// applyTo returns base with e merged in. Colors and the level are normalized;
// an unknown level is kept verbatim so Validate reports it.
func (e Edits) applyTo(base Config) Config {
	out := base
	if e.DotColor != nil {
		out.DotColor = normalizeColor(*e.DotColor)
	}
	if e.BackgroundColor != nil {
		out.BackgroundColor = normalizeColor(*e.BackgroundColor)
	}
	if e.Scale != nil {
		out.Scale = *e.Scale
	}
	if e.Border != nil {
		out.Border = *e.Border
	}
	if e.ErrorCorrection != nil {
		if l, err := ParseLevel(*e.ErrorCorrection); err == nil {
			out.ErrorCorrection = l
		} else {
			out.ErrorCorrection = Level(*e.ErrorCorrection)
		}
	}
	return out
}
