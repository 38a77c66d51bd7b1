package payload

import (
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// EmailPayload is a mailto: template.
type EmailPayload struct {
	Recipient string `json:"recipient"`
	CC        string `json:"cc,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body,omitempty"`
	BCC       string `json:"bcc,omitempty"`
}

func (EmailPayload) UseCase() UseCase { return Email }

// Content builds the mailto URI. Optional fields are appended in the fixed
// order cc, subject, body, bcc; the first present one takes '?' and the rest
// '&'. Values are not percent-encoded because existing printed codes were
// produced this way.
func (p EmailPayload) Content() string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(p.Recipient)

	sep := "?"
	for _, q := range [...]struct{ key, value string }{
		{"cc", p.CC},
		{"subject", p.Subject},
		{"body", p.Body},
		{"bcc", p.BCC},
	} {
		if q.value == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(q.key)
		b.WriteString("=")
		b.WriteString(q.value)
		sep = "&"
	}
	return b.String()
}

func encodeEmail(fields Fields) (Payload, error) {
	recipient := fields.Get("recipient")
	if recipient == "" {
		return nil, validation.New("recipient", "is required")
	}
	return EmailPayload{
		Recipient: recipient,
		CC:        fields.Get("cc"),
		Subject:   fields.Get("subject"),
		Body:      fields.Get("body"),
		BCC:       fields.Get("bcc"),
	}, nil
}
