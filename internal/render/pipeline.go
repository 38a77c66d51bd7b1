// Package render turns a payload and a committed settings.Config into a QR
// image. Symbol encoding is delegated to third-party QR libraries behind the
// Engine interface.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// Format is the output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatSVG  Format = "svg"
)

// ParseFormat accepts png, jpg/jpeg and svg. Empty selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", validation.New("format", "must be one of png, jpg, svg")
}

// MIMEType is the content type of images in format f.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// jpegQuality matches what browsers produce for "high quality" exports.
const jpegQuality = 92

// Pipeline renders payloads. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	engine Engine
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a pipeline backed by engine. A nil engine selects Yeqown.
func New(engine Engine, opts ...Option) *Pipeline {
	if engine == nil {
		engine = Yeqown{}
	}
	p := &Pipeline{engine: engine, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Engine returns the QR engine in use.
func (p *Pipeline) Engine() Engine { return p.engine }

// Render produces the PNG artifact for pl with cfg.
func (p *Pipeline) Render(pl payload.Payload, cfg settings.Config) (Artifact, error) {
	return p.RenderFormat(pl, cfg, FormatPNG)
}

// RenderFormat produces the artifact for pl with cfg in format. It returns
// either a complete artifact or an error: a validation error for a bad
// config, or a *Error of kind PayloadTooLarge or EncoderFailure.
func (p *Pipeline) RenderFormat(pl payload.Payload, cfg settings.Config, format Format) (Artifact, error) {
	if pl == nil {
		return Artifact{}, validation.New("payload", "is required")
	}
	if err := cfg.Validate(); err != nil {
		return Artifact{}, err
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return Artifact{}, err
	}

	uc := pl.UseCase()
	content := pl.Content()

	var sym Symbol
	err := guard(func() error {
		var err error
		sym, err = p.engine.Encode(content, cfg.ErrorCorrection)
		return err
	})
	if err != nil {
		return Artifact{}, &Error{Kind: KindPayloadTooLarge, UseCase: uc, Level: cfg.ErrorCorrection, Err: err}
	}

	style := StyleOf(cfg)
	var data []byte
	err = guard(func() error {
		var err error
		data, err = rasterize(sym, style, format)
		return err
	})
	if err != nil {
		return Artifact{}, &Error{Kind: KindEncoderFailure, UseCase: uc, Level: cfg.ErrorCorrection, Err: err}
	}

	side := sym.Matrix().ImageSide(style.Scale, style.Border)
	p.logger.Debug("qr rendered",
		slog.String("engine", p.engine.Name()),
		slog.String("use_case", uc.String()),
		slog.String("format", string(format)),
		slog.Int("modules", sym.Matrix().Size()),
		slog.Int("side", side),
		slog.Int("bytes", len(data)),
	)

	return Artifact{
		Image:    data,
		MIMEType: format.MIMEType(),
		Filename: uc.Filename(string(format)),
		Width:    side,
		Height:   side,
	}, nil
}

func rasterize(sym Symbol, style Style, format Format) ([]byte, error) {
	if format == FormatSVG {
		return SVG(sym.Matrix(), style), nil
	}

	var buf bytes.Buffer
	if err := sym.WritePNG(&buf, style); err != nil {
		return nil, err
	}
	if format == FormatPNG {
		return buf.Bytes(), nil
	}

	// JPEG has no alpha: composite the PNG onto an opaque background.
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, err
	}
	bg := color.NRGBA{R: style.Light.R, G: style.Light.G, B: style.Light.B, A: 0xff}
	if style.Light.A == 0 {
		bg = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return jpg.Bytes(), nil
}
