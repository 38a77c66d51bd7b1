package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/web/components/toast"
)

// GenericToast returns a toast rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	err := toast.Toast(toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toast.ParseVariant(c.PostForm("variant")),
		Position:    toast.PositionBottomRight,
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
		Icon:        true,
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		_ = c.Error(err)
	}
}
