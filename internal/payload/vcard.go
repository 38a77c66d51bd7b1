package payload

import "strings"

// VCardPayload is a contact card. DisplayName and Phone are required.
type VCardPayload struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	URL         string `json:"url,omitempty"`
	Country     string `json:"country,omitempty"`
	Org         string `json:"org,omitempty"`
	Title       string `json:"title,omitempty"`
	WorkPhone   string `json:"work_phone,omitempty"`
}

func (VCardPayload) UseCase() UseCase { return VCard }

// Content renders a vCard 3.0 record. Empty optional fields produce no line.
func (p VCardPayload) Content() string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:",
		"FN:" + vcardText(p.DisplayName),
	}
	add := func(prefix, value string) {
		if value != "" {
			lines = append(lines, prefix+value)
		}
	}
	add("EMAIL:", p.Email)
	add("TEL:", p.Phone)
	add("URL:", p.URL)
	if p.Country != "" {
		// ADR components: pobox;ext;street;locality;region;code;country
		add("ADR:;;;;;;", vcardText(p.Country))
	}
	add("ORG:", vcardText(p.Org))
	add("TITLE:", vcardText(p.Title))
	add("TEL;TYPE=WORK:", p.WorkPhone)
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\r\n")
}

func encodeVCard(fields Fields) (Payload, error) {
	if err := required(fields, "display_name", "phone").Err(); err != nil {
		return nil, err
	}
	return VCardPayload{
		DisplayName: fields.Get("display_name"),
		Email:       fields.Get("email"),
		Phone:       fields.Get("phone"),
		URL:         fields.Get("url"),
		Country:     fields.Get("country"),
		Org:         fields.Get("org"),
		Title:       fields.Get("title"),
		WorkPhone:   fields.Get("work_phone"),
	}, nil
}
