package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
	"github.com/cristianadrielbraun/qrstudio/internal/settings"
	"github.com/cristianadrielbraun/qrstudio/internal/validation"
)

type settingsResponse struct {
	UseCase payload.UseCase  `json:"use_case"`
	Config  settings.Config  `json:"config"`
	Pending *settings.Config `json:"pending,omitempty"`
}

func newSettingsResponse(store *settings.Store, uc payload.UseCase) settingsResponse {
	resp := settingsResponse{UseCase: uc, Config: store.Get(uc)}
	if staged, ok := store.Pending(uc); ok {
		cfg := staged.Config
		resp.Pending = &cfg
	}
	return resp
}

// sessionStore resolves the use case in the path and the visitor's store.
func sessionStore(c *gin.Context) (*settings.Store, payload.UseCase, error) {
	uc, err := payload.ParseUseCase(c.Param("usecase"))
	if err != nil {
		return nil, "", err
	}
	store, ok := session.FromContext(c)
	if !ok {
		return nil, "", session.ErrNoSession
	}
	return store, uc, nil
}

// bindEdits reads partial settings from a JSON or form body. An empty body
// yields empty edits.
func bindEdits(c *gin.Context) (settings.Edits, error) {
	var edits settings.Edits
	if c.Request.ContentLength == 0 && c.Request.URL.RawQuery == "" {
		return edits, nil
	}

	var err error
	if strings.HasPrefix(c.ContentType(), "application/json") {
		err = c.ShouldBindJSON(&edits)
	} else {
		err = c.ShouldBind(&edits)
	}
	if err != nil {
		return edits, validation.New("body", "is malformed: "+err.Error())
	}
	return edits, nil
}

// committed persists the session and writes the settings of uc.
func (h *Handler) committed(c *gin.Context, store *settings.Store, uc payload.UseCase) {
	if err := session.Commit(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(store, uc))
}

// GetSettings returns the committed and pending settings.
func (h *Handler) GetSettings(c *gin.Context) {
	store, uc, err := sessionStore(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(store, uc))
}

// StageSettings merges the edits in the body into the pending settings
// without affecting renders.
func (h *Handler) StageSettings(c *gin.Context) {
	store, uc, err := sessionStore(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	edits, err := bindEdits(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if _, err := store.Stage(uc, edits); err != nil {
		h.fail(c, err)
		return
	}
	h.committed(c, store, uc)
}

// ApplySettings commits the pending settings. Edits in the body are staged
// first, so a single request can stage and apply.
func (h *Handler) ApplySettings(c *gin.Context) {
	store, uc, err := sessionStore(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	edits, err := bindEdits(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !edits.Empty() {
		if _, err := store.Stage(uc, edits); err != nil {
			h.fail(c, err)
			return
		}
	}

	staged, ok := store.Pending(uc)
	if !ok {
		h.fail(c, errNothingStaged)
		return
	}
	if _, err := store.Apply(uc, staged); err != nil {
		h.fail(c, err)
		return
	}
	h.committed(c, store, uc)
}

// DiscardSettings drops the pending settings.
func (h *Handler) DiscardSettings(c *gin.Context) {
	store, uc, err := sessionStore(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	store.Discard(uc)
	h.committed(c, store, uc)
}

// ResetSettings restores the defaults.
func (h *Handler) ResetSettings(c *gin.Context) {
	store, uc, err := sessionStore(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	store.Reset(uc)
	h.committed(c, store, uc)
}
