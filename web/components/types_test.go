package components_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
	"github.com/cristianadrielbraun/qrstudio/web/components"
)

func TestFieldsMatchPayload(t *testing.T) {
	t.Parallel()

	for _, uc := range payload.UseCases {
		var names []string
		for _, f := range components.Fields(uc) {
			names = append(names, f.Name)
		}
		assert.ElementsMatch(t, payload.FieldNames(uc), names, uc)
	}
}

func TestForms(t *testing.T) {
	t.Parallel()

	forms := components.Forms(nil)
	require.Len(t, forms, len(payload.UseCases))
	assert.Equal(t, "Custom Link", forms[0].Title)
	assert.Equal(t, settings.Default(), forms[0].Settings)

	store := settings.NewStore()
	border := 4
	staged, err := store.Stage(payload.Text, settings.Edits{Border: &border})
	require.NoError(t, err)
	_, err = store.Apply(payload.Text, staged)
	require.NoError(t, err)

	for _, f := range components.Forms(store) {
		if f.UseCase == payload.Text {
			assert.Equal(t, 4, f.Settings.Border)
		} else {
			assert.Equal(t, 2, f.Settings.Border)
		}
		assert.Nil(t, f.Pending)
	}
}
