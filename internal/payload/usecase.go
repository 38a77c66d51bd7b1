package payload

import (
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// UseCase selects the encoder and the settings namespace for a QR code.
type UseCase string

const (
	Link  UseCase = "link"
	WiFi  UseCase = "wifi"
	VCard UseCase = "vcard"
	Text  UseCase = "text"
	Email UseCase = "email"
)

// UseCases lists every use case in the order the UI presents them.
var UseCases = []UseCase{Link, WiFi, VCard, Text, Email}

// ParseUseCase accepts a use case name in any letter case.
func ParseUseCase(s string) (UseCase, error) {
	uc := UseCase(strings.ToLower(strings.TrimSpace(s)))
	if !uc.Valid() {
		return "", validation.New("use_case", "must be one of link, wifi, vcard, text, email")
	}
	return uc, nil
}

// Valid reports whether u is a known use case.
func (u UseCase) Valid() bool {
	switch u {
	case Link, WiFi, VCard, Text, Email:
		return true
	}
	return false
}

func (u UseCase) String() string { return string(u) }

// Title is the human-readable tab label.
func (u UseCase) Title() string {
	switch u {
	case Link:
		return "Custom Link"
	case WiFi:
		return "WiFi QR Code"
	case VCard:
		return "V-Card"
	case Text:
		return "Text"
	case Email:
		return "Email"
	}
	return string(u)
}

// Filename returns the suggested download name for an image with the given
// extension, e.g. "wifi.png".
func (u UseCase) Filename(ext string) string {
	return string(u) + "." + strings.TrimPrefix(ext, ".")
}
