// Package payload turns raw form fields into the canonical content encoded
// into a QR symbol for each use case.
package payload

import (
	"slices"
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// Payload is the canonical, use-case specific data placed in a QR symbol.
type Payload interface {
	UseCase() UseCase
	// Content serializes the payload to the string handed to the QR encoder.
	Content() string
}

// Fields holds raw form values keyed by field name.
type Fields map[string]string

// Get returns the value for key, or "" when absent.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// LinkPayload is an arbitrary URL. The scheme is not enforced.
type LinkPayload struct {
	URL string `json:"url"`
}

func (LinkPayload) UseCase() UseCase { return Link }
func (p LinkPayload) Content() string { return p.URL }

// TextPayload is free text encoded verbatim.
type TextPayload struct {
	Text string `json:"content"`
}

func (TextPayload) UseCase() UseCase { return Text }
func (p TextPayload) Content() string { return p.Text }

var fieldNames = map[UseCase][]string{
	Link:  {"url"},
	WiFi:  {"ssid", "password", "security", "hidden"},
	VCard: {"display_name", "email", "phone", "url", "country", "org", "title", "work_phone"},
	Text:  {"content"},
	Email: {"recipient", "cc", "subject", "body", "bcc"},
}

// FieldNames lists the raw fields read by Encode for uc.
func FieldNames(uc UseCase) []string {
	return slices.Clone(fieldNames[uc])
}

// Encode validates fields for uc and builds its payload.
// Every failure is a *validation.Error or validation.Errors.
func Encode(uc UseCase, fields Fields) (Payload, error) {
	switch uc {
	case Link:
		return encodeLink(fields)
	case WiFi:
		return encodeWiFi(fields)
	case VCard:
		return encodeVCard(fields)
	case Text:
		return encodeText(fields)
	case Email:
		return encodeEmail(fields)
	}
	return nil, validation.New("use_case", "must be one of link, wifi, vcard, text, email")
}

func encodeLink(fields Fields) (Payload, error) {
	url := fields.Get("url")
	if url == "" {
		return nil, validation.New("url", "is required")
	}
	return LinkPayload{URL: url}, nil
}

func encodeText(fields Fields) (Payload, error) {
	content := fields.Get("content")
	if content == "" {
		return nil, validation.New("content", "is required")
	}
	return TextPayload{Text: content}, nil
}

// required appends an error for every listed field that is empty.
func required(fields Fields, names ...string) validation.Errors {
	var errs validation.Errors
	for _, name := range names {
		if fields.Get(name) == "" {
			errs = append(errs, validation.New(name, "is required"))
		}
	}
	return errs
}

// parseBool accepts the spellings HTML forms and radio groups produce.
func parseBool(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false, nil
	case "1", "true", "yes", "on":
		return true, nil
	}
	return false, validation.New(field, "must be yes or no")
}
