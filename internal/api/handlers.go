package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/render"
	"github.com/logo-studio/backend/internal/storage"
)

// Handler handles API requests.
type Handler struct {
	sessions SessionManager
	store    storage.Store
	presets  PresetCatalog
	compiler *render.Compiler
}

// NewHandler creates a new API handler. A nil compiler renders stateless
// requests with the default one.
func NewHandler(sessions SessionManager, store storage.Store, presets PresetCatalog, compiler *render.Compiler) *Handler {
	if compiler == nil {
		compiler = render.NewCompiler()
	}
	return &Handler{
		sessions: sessions,
		store:    store,
		presets:  presets,
		compiler: compiler,
	}
}

type createSessionRequest struct {
	Canvas *models.CanvasSettings `json:"canvasSettings"`
}

// HandleCreateSession starts an editing session. The body is optional.
func (h *Handler) HandleCreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Canvas != nil {
		if err := validateCanvas(*req.Canvas); err != nil {
			return err
		}
	}

	sess, err := h.sessions.CreateSession(req.Canvas)
	if err != nil {
		return NewInternalError("failed to create session", err)
	}
	return c.JSON(http.StatusCreated, sess)
}

// HandleGetSession returns the state of a session.
func (h *Handler) HandleGetSession(c echo.Context) error {
	id := c.Param("id")
	sess, ok := h.sessions.GetSession(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	return c.JSON(http.StatusOK, sess)
}

// HandleDeleteSession ends a session.
func (h *Handler) HandleDeleteSession(c echo.Context) error {
	id := c.Param("id")
	if !h.sessions.DeleteSession(id) {
		return NewNotFoundError("session", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleSessionKeepAlive protects an idle session from cleanup.
func (h *Handler) HandleSessionKeepAlive(c echo.Context) error {
	id := c.Param("id")
	if !h.sessions.TouchSession(id) {
		return NewNotFoundError("session", id)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSetCanvas replaces the canvas settings of a session.
func (h *Handler) HandleSetCanvas(c echo.Context) error {
	id := c.Param("id")
	var canvas models.CanvasSettings
	if err := c.Bind(&canvas); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := validateCanvas(canvas); err != nil {
		return err
	}

	sess, err := h.sessions.SetCanvas(id, canvas)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, sess)
}

func validateCanvas(canvas models.CanvasSettings) error {
	if canvas.Width <= 0 {
		return NewValidationError("width")
	}
	if canvas.Height <= 0 {
		return NewValidationError("height")
	}
	return nil
}
