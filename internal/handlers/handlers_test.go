package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/handlers"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// client is a test visitor that keeps its session cookie.
type client struct {
	t      *testing.T
	r      http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	return newClientWith(t, render.Skip2{}, nil)
}

// newClientWith uses engine and backend; a nil backend is a memory store.
func newClientWith(t *testing.T, engine render.Engine, backend session.Store) *client {
	t.Helper()
	if backend == nil {
		mem := session.NewMemoryStore(time.Hour, 0)
		t.Cleanup(func() { _ = mem.Close() })
		backend = mem
	}

	r := gin.New()
	h := handlers.New(render.New(engine))
	h.Register(r, session.NewManager(backend).Middleware())
	return &client{t: t, r: r}
}

func (cl *client) do(method, target string, body url.Values, header ...string) *httptest.ResponseRecorder {
	cl.t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "qr_session" {
			cl.cookie = c
		}
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error  string            `json:"error"`
	Field  string            `json:"field"`
	Fields map[string]string `json:"fields"`
	Hint   string            `json:"hint"`
	Kind   string            `json:"kind"`
}

type settingsBody struct {
	UseCase string `json:"use_case"`
	Config  struct {
		DotColor        string `json:"dot_color"`
		Scale           int    `json:"scale"`
		Border          int    `json:"border"`
		ErrorCorrection string `json:"error_correction"`
	} `json:"config"`
	Pending *struct {
		Scale int `json:"scale"`
	} `json:"pending"`
}

type previewBody struct {
	DataURI  string `json:"data_uri"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func TestQRReturnsPNG(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	w := cl.do(http.MethodGet, "/api/qr/link?url=https://example.com", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
}

func TestQRDownload(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	form := url.Values{"ssid": {"Bistro"}, "password": {"hunter22"}, "security": {"wpa"}}
	w := cl.do(http.MethodPost, "/api/qr/WIFI?format=svg&download=1", form)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="wifi.svg"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestQRValidationErrors(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{name: "unknown use case", target: "/api/qr/sms?content=x", field: "use_case"},
		{name: "missing url", target: "/api/qr/link", field: "url"},
		{name: "open network with password", target: "/api/qr/wifi?ssid=Bistro&security=None&password=x", field: "password"},
		{name: "vcard without phone", target: "/api/qr/vcard?display_name=Ada", field: "phone"},
		{name: "unknown format", target: "/api/qr/text?content=x&format=gif", field: "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := cl.do(http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[errorBody](t, w)
			assert.Equal(t, tt.field, body.Field)
			assert.Contains(t, body.Fields, tt.field)
		})
	}
}

func TestQRPayloadTooLarge(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	form := url.Values{"content": {strings.Repeat("a", 2000)}}
	w := cl.do(http.MethodPost, "/api/qr/text", form)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	body := decode[errorBody](t, w)
	assert.Contains(t, body.Error, "level H")
	assert.NotEmpty(t, body.Hint)
	assert.Equal(t, "payload_too_large", body.Kind)

	// HTMX callers get a toast fragment.
	w = cl.do(http.MethodPost, "/api/qr/text", form, "HX-Request", "true")
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "#toast-container", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), "data-toast")
	assert.Contains(t, w.Body.String(), "lower the error correction level")

	// Lowering the level makes it fit.
	w = cl.do(http.MethodPost, "/api/settings/text/apply", url.Values{"error_correction": {"l"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = cl.do(http.MethodPost, "/api/qr/text", form)
	assert.Equal(t, http.StatusOK, w.Code)
}

// failingEngine produces symbols that cannot be written as PNG.
type failingEngine struct{ panics bool }

func (failingEngine) Name() string { return "failing" }

func (e failingEngine) Encode(string, settings.Level) (render.Symbol, error) {
	return failingSymbol(e), nil
}

type failingSymbol struct{ panics bool }

func (failingSymbol) Matrix() *render.Matrix {
	return render.MatrixFromBitmap([][]bool{{true}})
}

func (s failingSymbol) WritePNG(io.Writer, render.Style) error {
	if s.panics {
		panic("broken writer")
	}
	return errors.New("broken writer")
}

func TestQREncoderFailure(t *testing.T) {
	t.Parallel()

	for _, panics := range []bool{false, true} {
		cl := newClientWith(t, failingEngine{panics: panics}, nil)

		w := cl.do(http.MethodGet, "/api/qr/link?url=x", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
		body := decode[errorBody](t, w)
		assert.Equal(t, "failed to generate QR code", body.Error)
		assert.Equal(t, "encoder_failure", body.Kind)
		assert.NotContains(t, w.Body.String(), "broken writer")

		w = cl.do(http.MethodGet, "/api/preview/link?url=x", nil, "HX-Request", "true")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "#toast-container", w.Header().Get("HX-Retarget"))
		assert.Contains(t, w.Body.String(), "Something went wrong")
	}
}

// unsavableStore loads like a memory store but rejects every save.
type unsavableStore struct{ *session.MemoryStore }

func (unsavableStore) Save(context.Context, string, *settings.Store) error {
	return errors.New("redis: connection refused")
}

func TestSettingsSaveFailure(t *testing.T) {
	t.Parallel()

	mem := session.NewMemoryStore(time.Hour, 0)
	t.Cleanup(func() { _ = mem.Close() })
	cl := newClientWith(t, render.Skip2{}, unsavableStore{mem})

	w := cl.do(http.MethodPost, "/api/settings/link/apply", url.Values{"scale": {"20"}})
	require.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())
	body := decode[errorBody](t, w)
	assert.Equal(t, "settings could not be saved, try again", body.Error)
	assert.NotContains(t, w.Body.String(), "connection refused")

	w = cl.do(http.MethodPost, "/api/settings/link/stage", url.Values{"scale": {"20"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSettingsLifecycle(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	preview := func(uc, query string) previewBody {
		t.Helper()
		w := cl.do(http.MethodGet, "/api/preview/"+uc+"?"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[previewBody](t, w)
	}

	before := preview("link", "url=https://example.com")
	assert.Equal(t, "link.png", before.Filename)
	assert.Equal(t, "image/png", before.MIMEType)
	assert.True(t, strings.HasPrefix(before.DataURI, "data:image/png;base64,"))
	assert.Equal(t, before.Width, before.Height)

	// Staging does not affect renders.
	w := cl.do(http.MethodPost, "/api/settings/link/stage", url.Values{"scale": {"20"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	staged := decode[settingsBody](t, w)
	assert.Equal(t, 10, staged.Config.Scale)
	require.NotNil(t, staged.Pending)
	assert.Equal(t, 20, staged.Pending.Scale)
	assert.Equal(t, before.Width, preview("link", "url=https://example.com").Width)

	// Apply commits the pending edit.
	w = cl.do(http.MethodPost, "/api/settings/link/apply", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	applied := decode[settingsBody](t, w)
	assert.Equal(t, 20, applied.Config.Scale)
	assert.Nil(t, applied.Pending)
	assert.Equal(t, 2*before.Width, preview("link", "url=https://example.com").Width)

	// Other use cases keep their own settings.
	w = cl.do(http.MethodGet, "/api/settings/wifi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, decode[settingsBody](t, w).Config.Scale)

	// Nothing left to apply.
	w = cl.do(http.MethodPost, "/api/settings/link/apply", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Out-of-range values are rejected and not staged.
	w = cl.do(http.MethodPost, "/api/settings/link/stage", url.Values{"scale": {"4"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "scale", decode[errorBody](t, w).Field)
	w = cl.do(http.MethodGet, "/api/settings/link", nil)
	assert.Nil(t, decode[settingsBody](t, w).Pending)

	// Discard drops a pending edit, reset restores defaults.
	cl.do(http.MethodPost, "/api/settings/link/stage", url.Values{"border": {"5"}})
	w = cl.do(http.MethodDelete, "/api/settings/link/stage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	discarded := decode[settingsBody](t, w)
	assert.Nil(t, discarded.Pending)
	assert.Equal(t, 20, discarded.Config.Scale)

	w = cl.do(http.MethodDelete, "/api/settings/link", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, decode[settingsBody](t, w).Config.Scale)
}

func TestSettingsJSONBody(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/email/stage",
		strings.NewReader(`{"dot_color":"#1e3a8a","error_correction":"q"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[settingsBody](t, w)
	require.NotNil(t, body.Pending)
	assert.Equal(t, "#000000", body.Config.DotColor)

	req = httptest.NewRequest(http.MethodPost, "/api/settings/email/stage", strings.NewReader(`{"scale":"big"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()
	alice := newClient(t)
	bob := &client{t: t, r: alice.r}

	w := alice.do(http.MethodPost, "/api/settings/link/apply", url.Values{"scale": {"30"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = bob.do(http.MethodGet, "/api/settings/link", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, decode[settingsBody](t, w).Config.Scale)

	w = alice.do(http.MethodGet, "/api/settings/link", nil)
	assert.Equal(t, 30, decode[settingsBody](t, w).Config.Scale)
}

func TestPages(t *testing.T) {
	t.Parallel()
	cl := newClient(t)

	w := cl.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-panel="vcard"`)
	require.NotNil(t, cl.cookie)

	w = cl.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","engine":"skip2"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "qr.example.com"
	rec := httptest.NewRecorder()
	cl.r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://qr.example.com/</loc>")

	w = cl.do(http.MethodPost, "/api/htmx/toast", url.Values{"title": {"Saved"}, "variant": {"info"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Saved")
	assert.Contains(t, w.Body.String(), `data-variant="info"`)
}
