// Package pages renders the full HTML pages.
package pages

import (
	"context"
	_ "embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/cristianadrielbraun/qrstudio/web/components"
)

//go:embed home.html
var homeHTML string

var homeTemplate = template.Must(template.New("home").Funcs(template.FuncMap{
	"classes": func(cs ...string) string { return twmerge.Merge(cs...) },
	"first":   func(i int) bool { return i == 0 },
}).Parse(homeHTML))

// HomeView is the data of the home page.
type HomeView struct {
	Title  string
	Forms  []components.Form
	Bounds components.SettingsBounds
}

// HomePage renders the QR builder with one tab per use case.
func HomePage(v HomeView) templ.Component {
	if v.Title == "" {
		v.Title = "QR Studio"
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return homeTemplate.Execute(w, v)
	})
}
