package payload

import "strings"

var mecardEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`"`, `\"`,
	`:`, `\:`,
)

// mecardValue escapes a WIFI: field. Values made only of hex digits are
// quoted so readers do not take them for a hex-encoded key.
func mecardValue(s string) string {
	if isHex(s) {
		return `"` + s + `"`
	}
	return mecardEscaper.Replace(s)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// vcardText escapes a vCard 3.0 TEXT value.
func vcardText(s string) string {
	return vcardEscaper.Replace(s)
}
