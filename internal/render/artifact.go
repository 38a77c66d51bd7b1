package render

import (
	"encoding/base64"
	"strings"
)

// Artifact is a rendered QR image ready for display or download.
type Artifact struct {
	Image    []byte
	MIMEType string
	Filename string
	Width    int
	Height   int
}

// DataURI encodes the image as a "data:" URI for inline previews.
func (a Artifact) DataURI() string {
	b := strings.Builder{}
	b.WriteString("data:")
	b.WriteString(a.MIMEType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(a.Image))
	return b.String()
}
