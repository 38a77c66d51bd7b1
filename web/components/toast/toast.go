// Package toast renders notification fragments swapped in by HTMX.
package toast

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// ParseVariant maps a form value to a variant. "destructive" is an alias of
// error; anything unknown is success.
func ParseVariant(s string) Variant {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	}
	return VariantSuccess
}

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID          string
	Class       string
	Title       string
	Description string
	Variant     Variant
	Position    Position
	// Duration in milliseconds before the toast hides itself. Zero keeps it.
	Duration      int
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var icons = map[Variant]string{
	VariantSuccess: "&#10003;",
	VariantError:   "&#10005;",
	VariantWarning: "&#9888;",
	VariantInfo:    "&#8505;",
}

// Toast renders a toast element. The classes in Props.Class win over the
// defaults.
func Toast(p Props) templ.Component {
	if p.Variant == "" {
		p.Variant = VariantSuccess
	}
	if p.Position == "" {
		p.Position = PositionBottomRight
	}

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := twmerge.Merge(
			"fixed z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg",
			positionClasses[p.Position],
			variantClasses[p.Variant],
			p.Class,
		)

		var b strings.Builder
		b.WriteString(`<div`)
		if p.ID != "" {
			fmt.Fprintf(&b, ` id="%s"`, templ.EscapeString(p.ID))
		}
		fmt.Fprintf(&b, ` class="%s" role="status" data-toast data-variant="%s"`,
			templ.EscapeString(class), templ.EscapeString(string(p.Variant)))
		if p.Duration > 0 {
			fmt.Fprintf(&b, ` data-duration="%d"`, p.Duration)
		}
		b.WriteString(`>`)

		if p.Icon {
			fmt.Fprintf(&b, `<span class="shrink-0" aria-hidden="true">%s</span>`, icons[p.Variant])
		}
		b.WriteString(`<div class="flex-1">`)
		if p.Title != "" {
			fmt.Fprintf(&b, `<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title))
		}
		if p.Description != "" {
			fmt.Fprintf(&b, `<p class="text-sm opacity-90">%s</p>`, templ.EscapeString(p.Description))
		}
		b.WriteString(`</div>`)
		if p.Dismissible {
			b.WriteString(`<button type="button" class="shrink-0 opacity-60 hover:opacity-100" aria-label="Close" onclick="this.parentElement.remove()">&times;</button>`)
		}
		if p.ShowIndicator && p.Duration > 0 {
			fmt.Fprintf(&b, `<div class="absolute bottom-0 left-0 h-1 w-full bg-current opacity-20" style="animation: toast-progress %dms linear forwards"></div>`, p.Duration)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
