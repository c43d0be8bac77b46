// handlers_history.go - Undo/redo handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type jumpHistoryRequest struct {
	Index *int `json:"index"`
}

// HandleGetHistory returns the history entries of a session.
func (h *Handler) HandleGetHistory(c echo.Context) error {
	id := c.Param("id")
	state, err := h.sessions.History(id)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, state)
}

// HandleUndo steps back one entry. At the oldest entry nothing changes.
func (h *Handler) HandleUndo(c echo.Context) error {
	id := c.Param("id")
	state, err := h.sessions.Undo(id)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, state)
}

// HandleRedo steps forward one entry. At the newest entry nothing changes.
func (h *Handler) HandleRedo(c echo.Context) error {
	id := c.Param("id")
	state, err := h.sessions.Redo(id)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, state)
}

// HandleJumpHistory moves to an entry by index. Out of range indexes leave
// the history where it is.
func (h *Handler) HandleJumpHistory(c echo.Context) error {
	id := c.Param("id")
	var req jumpHistoryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Index == nil {
		return NewValidationError("index")
	}

	state, err := h.sessions.JumpTo(id, *req.Index)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, state)
}
