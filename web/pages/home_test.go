package pages_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
	"github.com/cristianadrielbraun/qrstudio/web/components"
	"github.com/cristianadrielbraun/qrstudio/web/pages"
)

func TestHomePage(t *testing.T) {
	t.Parallel()

	store := settings.NewStore()
	scale := 25
	_, err := store.Stage(payload.WiFi, settings.Edits{Scale: &scale})
	require.NoError(t, err)

	var b strings.Builder
	err = pages.HomePage(pages.HomeView{Forms: components.Forms(store), Bounds: components.Bounds()}).Render(context.Background(), &b)
	require.NoError(t, err)
	html := b.String()

	assert.Contains(t, html, "<title>QR Studio</title>")
	for _, uc := range payload.UseCases {
		assert.Contains(t, html, `data-panel="`+uc.String()+`"`)
		assert.Contains(t, html, uc.Title())
	}
	assert.Contains(t, html, `name="display_name"`)
	assert.Contains(t, html, `name="work_phone"`)
	assert.Contains(t, html, `min="5" max="40"`)
	// Only the first panel is visible before any script runs.
	assert.Contains(t, html, `<section data-panel="link" class="grid gap-6 md:grid-cols-2">`)
	assert.Equal(t, len(payload.UseCases)-1, strings.Count(html, `class="grid gap-6 md:grid-cols-2" hidden>`))
	assert.NotContains(t, html, "/web/static")

	// Only the WiFi tab has an unapplied change.
	assert.Equal(t, 1, strings.Count(html, `<p class="qr-pending text-sm text-amber-700">`))
}
