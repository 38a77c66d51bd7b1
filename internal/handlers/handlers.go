// Package handlers implements the HTTP surface of the QR builder.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
	"github.com/cristianadrielbraun/qrstudio/web/components"
	"github.com/cristianadrielbraun/qrstudio/web/pages"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	pipeline *render.Pipeline
	logger   *slog.Logger
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New returns a Handler rendering with p. A nil pipeline uses the default
// engine.
func New(p *render.Pipeline, opts ...Option) *Handler {
	if p == nil {
		p = render.New(nil)
	}
	h := &Handler{pipeline: p, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on r. sessions wraps the routes that read or
// write per-visitor settings.
func (h *Handler) Register(r gin.IRouter, sessions gin.HandlerFunc) {
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)

	web := r.Group("/")
	if sessions != nil {
		web.Use(sessions)
	}
	web.GET("/", h.Home)

	api := web.Group("/api")
	{
		api.GET("/qr/:usecase", h.QR)
		api.POST("/qr/:usecase", h.QR)
		api.GET("/preview/:usecase", h.Preview)

		api.GET("/settings/:usecase", h.GetSettings)
		api.POST("/settings/:usecase/stage", h.StageSettings)
		api.POST("/settings/:usecase/apply", h.ApplySettings)
		api.DELETE("/settings/:usecase/stage", h.DiscardSettings)
		api.DELETE("/settings/:usecase", h.ResetSettings)

		api.POST("/htmx/toast", h.GenericToast)
	}
}

// Home renders the builder page with the visitor's settings.
func (h *Handler) Home(c *gin.Context) {
	store, _ := session.FromContext(c)
	view := pages.HomeView{Forms: components.Forms(store), Bounds: components.Bounds()}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := pages.HomePage(view).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to render home page", slog.String("error", err.Error()))
		_ = c.Error(err)
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "engine": h.pipeline.Engine().Name()})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:")) {
		scheme = "http"
	}
	base := scheme + "://" + host

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")
	b.WriteString("  <url>\n")
	b.WriteString("    <loc>" + base + "/</loc>\n")
	b.WriteString("    <changefreq>weekly</changefreq>\n")
	b.WriteString("    <priority>1.0</priority>\n")
	b.WriteString("  </url>\n")
	b.WriteString("</urlset>\n")

	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(b.String()))
}
