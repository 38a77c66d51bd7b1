package payload

import (
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

// Security is the WiFi authentication type.
type Security string

const (
	SecurityWEP  Security = "WEP"
	SecurityWPA  Security = "WPA"
	SecurityNone Security = "None"
)

// ParseSecurity accepts WEP, WPA, None and the "nopass" alias, in any case.
func ParseSecurity(s string) (Security, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wep":
		return SecurityWEP, nil
	case "wpa":
		return SecurityWPA, nil
	case "none", "nopass":
		return SecurityNone, nil
	case "":
		return "", validation.New("security", "is required")
	}
	return "", validation.New("security", "must be one of WEP, WPA, None")
}

// WiFiPayload configures a device to join a network.
type WiFiPayload struct {
	SSID     string   `json:"ssid"`
	Password string   `json:"password,omitempty"`
	Security Security `json:"security"`
	Hidden   bool     `json:"hidden"`
}

func (WiFiPayload) UseCase() UseCase { return WiFi }

// Content renders the WIFI: record understood by phone cameras. The
// authentication type is left out for open networks.
func (p WiFiPayload) Content() string {
	var b strings.Builder
	b.WriteString("WIFI:")
	if p.Security != SecurityNone {
		b.WriteString("T:" + string(p.Security) + ";")
	}
	b.WriteString("S:" + mecardValue(p.SSID) + ";")
	if p.Password != "" {
		b.WriteString("P:" + mecardValue(p.Password) + ";")
	}
	if p.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

func encodeWiFi(fields Fields) (Payload, error) {
	var errs validation.Errors

	ssid := fields.Get("ssid")
	if ssid == "" {
		errs = append(errs, validation.New("ssid", "is required"))
	}

	password := fields.Get("password")
	security, err := ParseSecurity(fields.Get("security"))
	if err != nil {
		errs = append(errs, err.(*validation.Error))
	} else {
		switch {
		case security == SecurityNone && password != "":
			errs = append(errs, validation.New("password", "must be empty for an open network"))
		case security != SecurityNone && password == "":
			errs = append(errs, validation.New("password", "is required for "+string(security)+" networks"))
		}
	}

	hidden, err := parseBool("hidden", fields.Get("hidden"))
	if err != nil {
		errs = append(errs, err.(*validation.Error))
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return WiFiPayload{SSID: ssid, Password: password, Security: security, Hidden: hidden}, nil
}
