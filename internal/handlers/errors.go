package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
	"github.com/cristianadrielbraun/qrstudio/internal/validation"
	"github.com/cristianadrielbraun/qrstudio/web/components/toast"
)

var errNothingStaged = errors.New("no staged settings to apply")

const tooLargeHint = "Shorten the content or lower the error correction level."

// errorInfo is the client-facing view of a failure.
type errorInfo struct {
	status  int
	title   string
	message string
	field   string
	fields  map[string]string
	hint    string
	kind    string
}

func classify(err error) errorInfo {
	var rerr *render.Error
	switch {
	case errors.Is(err, validation.ErrInvalid):
		field, _ := validation.Field(err)
		return errorInfo{
			status:  http.StatusBadRequest,
			title:   "Invalid input",
			message: err.Error(),
			field:   field,
			fields:  validation.Fields(err),
		}
	case errors.As(err, &rerr) && rerr.Kind == render.KindPayloadTooLarge:
		return errorInfo{
			status:  http.StatusRequestEntityTooLarge,
			title:   "Too much data for a QR code",
			message: "content does not fit a QR code at error correction level " + rerr.Level.String(),
			hint:    tooLargeHint,
			kind:    rerr.Kind.String(),
		}
	case errors.Is(err, errNothingStaged), errors.Is(err, settings.ErrUseCaseMismatch):
		return errorInfo{status: http.StatusConflict, title: "Nothing to apply", message: err.Error()}
	case errors.Is(err, session.ErrSaveFailed):
		return errorInfo{
			status:  http.StatusServiceUnavailable,
			title:   "Settings not saved",
			message: "settings could not be saved, try again",
		}
	default:
		info := errorInfo{
			status:  http.StatusInternalServerError,
			title:   "Something went wrong",
			message: "failed to generate QR code",
		}
		if errors.As(err, &rerr) {
			info.kind = rerr.Kind.String()
		}
		return info
	}
}

// fail logs err and writes it as JSON, or as a toast fragment for HTMX
// requests.
func (h *Handler) fail(c *gin.Context, err error) {
	info := classify(err)
	_ = c.Error(err)

	level := slog.LevelWarn
	if info.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.Int("status", info.status),
		slog.String("error", err.Error()),
	}
	if info.field != "" {
		attrs = append(attrs, slog.String("field", info.field))
	}
	var rerr *render.Error
	if errors.As(err, &rerr) {
		attrs = append(attrs, slog.String("kind", info.kind), slog.String("use_case", rerr.UseCase.String()))
	}
	h.logger.LogAttrs(c.Request.Context(), level, "request failed", attrs...)

	if c.GetHeader("HX-Request") == "true" {
		description := info.message
		if info.hint != "" {
			description = info.hint
		}
		variant := toast.VariantWarning
		if info.status >= http.StatusInternalServerError {
			variant = toast.VariantError
		}
		c.Header("HX-Retarget", "#toast-container")
		c.Header("HX-Reswap", "beforeend")
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(info.status)
		_ = toast.Toast(toast.Props{
			Title:       info.title,
			Description: description,
			Variant:     variant,
			Duration:    4000,
			Dismissible: true,
			Icon:        true,
		}).Render(c.Request.Context(), c.Writer)
		c.Abort()
		return
	}

	body := gin.H{"error": info.message}
	if info.field != "" {
		body["field"] = info.field
		body["fields"] = info.fields
	}
	if info.hint != "" {
		body["hint"] = info.hint
	}
	if info.kind != "" {
		body["kind"] = info.kind
	}
	c.AbortWithStatusJSON(info.status, body)
}
