package render

import (
	"errors"
	"fmt"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

var (
	// ErrPayloadTooLarge means the content does not fit any QR version at the
	// requested error correction level.
	ErrPayloadTooLarge = errors.New("payload too large for a QR code")
	// ErrEncoderFailure is an unexpected failure of the QR library or the
	// image encoder.
	ErrEncoderFailure = errors.New("qr encoder failure")
	// ErrUnknownEngine is returned by NewEngine for an unsupported name.
	ErrUnknownEngine = errors.New("unknown qr engine")
)

// Kind classifies a render failure.
type Kind int

const (
	KindPayloadTooLarge Kind = iota + 1
	KindEncoderFailure
)

func (k Kind) String() string {
	switch k {
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindEncoderFailure:
		return "encoder_failure"
	}
	return "unknown"
}

// Error is a failed render attempt. It matches ErrPayloadTooLarge or
// ErrEncoderFailure with errors.Is depending on Kind.
type Error struct {
	Kind    Kind
	UseCase payload.UseCase
	Level   settings.Level
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s at level %s: %v: %v", e.UseCase, e.Level, e.sentinel(), e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	if e.Kind == KindPayloadTooLarge {
		return ErrPayloadTooLarge
	}
	return ErrEncoderFailure
}

// guard runs fn and turns a panic inside a third-party library into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
