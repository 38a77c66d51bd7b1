package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

// previewResponse is the JSON body of Preview.
type previewResponse struct {
	DataURI  string `json:"data_uri"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// QR renders the use case in the path with the visitor's committed
// settings and returns the image. format=png|jpg|svg picks the output and
// download=1 asks the browser to save it.
func (h *Handler) QR(c *gin.Context) {
	art, err := h.render(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	if value(c, "download") == "1" {
		c.Header("Content-Disposition", `attachment; filename="`+art.Filename+`"`)
	}
	c.Data(http.StatusOK, art.MIMEType, art.Image)
}

// Preview renders like QR and returns the image inline as a data URI.
func (h *Handler) Preview(c *gin.Context) {
	art, err := h.render(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, previewResponse{
		DataURI:  art.DataURI(),
		Filename: art.Filename,
		MIMEType: art.MIMEType,
		Width:    art.Width,
		Height:   art.Height,
	})
}

func (h *Handler) render(c *gin.Context) (render.Artifact, error) {
	uc, err := payload.ParseUseCase(c.Param("usecase"))
	if err != nil {
		return render.Artifact{}, err
	}
	format, err := render.ParseFormat(value(c, "format"))
	if err != nil {
		return render.Artifact{}, err
	}

	fields := payload.Fields{}
	for _, name := range payload.FieldNames(uc) {
		if v, ok := lookup(c, name); ok {
			fields[name] = v
		}
	}
	p, err := payload.Encode(uc, fields)
	if err != nil {
		return render.Artifact{}, err
	}

	cfg := settings.Default()
	if store, ok := session.FromContext(c); ok {
		cfg = store.Get(uc)
	}
	return h.pipeline.RenderFormat(p, cfg, format)
}

// lookup reads a form value, preferring the request body over the query.
func lookup(c *gin.Context, name string) (string, bool) {
	if v, ok := c.GetPostForm(name); ok {
		return v, true
	}
	return c.GetQuery(name)
}

func value(c *gin.Context, name string) string {
	v, _ := lookup(c, name)
	return v
}
