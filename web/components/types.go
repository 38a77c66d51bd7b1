// Package components holds the view models shared by the page templates.
package components

import (
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// Option is one choice of a select or radio field.
type Option struct {
	Value string
	Label string
}

// Field is one input of a use-case form. Name matches the payload field.
type Field struct {
	Name        string
	Label       string
	Type        string // text, url, email, tel, password, textarea, select, radio
	Placeholder string
	Required    bool
	Options     []Option
}

// Form is the input form and current settings of one use case tab.
type Form struct {
	UseCase  payload.UseCase
	Title    string
	Fields   []Field
	Settings settings.Config
	Pending  *settings.Config
}

// SettingsBounds exposes the allowed ranges to the settings panel.
type SettingsBounds struct {
	MinScale, MaxScale   int
	MinBorder, MaxBorder int
	Levels               []settings.Level
}

// Bounds returns the settings limits.
func Bounds() SettingsBounds {
	return SettingsBounds{
		MinScale:  settings.MinScale,
		MaxScale:  settings.MaxScale,
		MinBorder: settings.MinBorder,
		MaxBorder: settings.MaxBorder,
		Levels:    settings.Levels,
	}
}

var yesNo = []Option{{Value: "no", Label: "No"}, {Value: "yes", Label: "Yes"}}

var fields = map[payload.UseCase][]Field{
	payload.Link: {
		{Name: "url", Label: "URL", Type: "url", Placeholder: "https://example.com", Required: true},
	},
	payload.WiFi: {
		{Name: "ssid", Label: "Network name (SSID)", Type: "text", Required: true},
		{Name: "password", Label: "Password", Type: "password"},
		{Name: "security", Label: "Security", Type: "select", Required: true, Options: []Option{
			{Value: "WPA", Label: "WPA/WPA2"},
			{Value: "WEP", Label: "WEP"},
			{Value: "None", Label: "None"},
		}},
		{Name: "hidden", Label: "Hidden network", Type: "radio", Options: yesNo},
	},
	payload.VCard: {
		{Name: "display_name", Label: "Display name", Type: "text", Required: true},
		{Name: "phone", Label: "Phone", Type: "tel", Required: true},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "url", Label: "Website", Type: "url"},
		{Name: "country", Label: "Country", Type: "text"},
		{Name: "org", Label: "Organization", Type: "text"},
		{Name: "title", Label: "Job title", Type: "text"},
		{Name: "work_phone", Label: "Work phone", Type: "tel"},
	},
	payload.Text: {
		{Name: "content", Label: "Text", Type: "textarea", Required: true},
	},
	payload.Email: {
		{Name: "recipient", Label: "To", Type: "email", Required: true},
		{Name: "cc", Label: "CC", Type: "email"},
		{Name: "bcc", Label: "BCC", Type: "email"},
		{Name: "subject", Label: "Subject", Type: "text"},
		{Name: "body", Label: "Message", Type: "textarea"},
	},
}

// Fields returns the form fields of uc.
func Fields(uc payload.UseCase) []Field { return fields[uc] }

// Forms builds the tab models for every use case with the settings in s.
func Forms(s *settings.Store) []Form {
	forms := make([]Form, 0, len(payload.UseCases))
	for _, uc := range payload.UseCases {
		f := Form{UseCase: uc, Title: uc.Title(), Fields: fields[uc], Settings: settings.Default()}
		if s != nil {
			f.Settings = s.Get(uc)
			if staged, ok := s.Pending(uc); ok {
				cfg := staged.Config
				f.Pending = &cfg
			}
		}
		forms = append(forms, f)
	}
	return forms
}
