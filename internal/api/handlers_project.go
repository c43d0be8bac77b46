// handlers_project.go - Saved project handlers
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/storage"
)

const defaultProjectListLimit = 50

type saveProjectRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	// AsNew stores a copy even when the session already has a project.
	AsNew bool `json:"asNew,omitempty"`
}

func (r *saveProjectRequest) validate() error {
	if r.SessionID == "" {
		return NewValidationError("sessionId")
	}
	if r.Name == "" {
		return NewValidationError("name")
	}
	return nil
}

type renameProjectRequest struct {
	Name string `json:"name"`
}

type openProjectRequest struct {
	SessionID string `json:"sessionId"`
}

// HandleSaveProject stores a session as a project. A session that was
// already saved or opened from a project overwrites it.
func (h *Handler) HandleSaveProject(c echo.Context) error {
	var req saveProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	sess, ok := h.sessions.GetSession(req.SessionID)
	if !ok {
		return NewNotFoundError("session", req.SessionID)
	}
	doc, err := h.sessions.Document(req.SessionID, req.Name)
	if err != nil {
		return editError(err, req.SessionID, "")
	}

	status := http.StatusCreated
	var info *models.ProjectInfo
	if sess.ProjectID != "" && !req.AsNew {
		info, err = h.store.Update(sess.ProjectID, doc)
		if err == nil {
			status = http.StatusOK
		} else if !errors.Is(err, storage.ErrProjectNotFound) {
			return projectError(err, sess.ProjectID)
		}
	}
	if info == nil {
		if info, err = h.store.Save(doc); err != nil {
			return projectError(err, "")
		}
	}

	if err := h.sessions.SetProjectID(req.SessionID, info.ID); err != nil {
		return editError(err, req.SessionID, "")
	}
	return c.JSON(status, info)
}

// HandleListProjects returns saved projects, newest first.
func (h *Handler) HandleListProjects(c echo.Context) error {
	limit := defaultProjectListLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	projects, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list projects", err)
	}
	if projects == nil {
		projects = []*models.ProjectInfo{}
	}
	return c.JSON(http.StatusOK, projects)
}

// HandleGetProject returns a saved project document.
func (h *Handler) HandleGetProject(c echo.Context) error {
	id := c.Param("id")
	doc, err := h.store.Load(id)
	if err != nil {
		return projectError(err, id)
	}
	return c.JSON(http.StatusOK, doc)
}

// HandleDeleteProject removes a saved project.
func (h *Handler) HandleDeleteProject(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		return projectError(err, id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleRenameProject renames a saved project.
func (h *Handler) HandleRenameProject(c echo.Context) error {
	id := c.Param("id")
	var req renameProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Name == "" {
		return NewValidationError("name")
	}

	info, err := h.store.Rename(id, req.Name)
	if err != nil {
		return projectError(err, id)
	}
	return c.JSON(http.StatusOK, info)
}

// HandleOpenProject loads a saved project for editing. With a sessionId the
// project replaces that session's scene as an undoable step; otherwise a new
// session is started.
func (h *Handler) HandleOpenProject(c echo.Context) error {
	id := c.Param("id")
	var req openProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	doc, err := h.store.Load(id)
	if err != nil {
		return projectError(err, id)
	}
	if doc.LogoSettings.Width <= 0 || doc.LogoSettings.Height <= 0 {
		return NewInternalError("stored project is invalid",
			fmt.Errorf("canvas %gx%g", doc.LogoSettings.Width, doc.LogoSettings.Height))
	}

	if req.SessionID != "" {
		sess, err := h.sessions.LoadDocument(req.SessionID, id, doc)
		if err != nil {
			return editError(err, req.SessionID, "")
		}
		return c.JSON(http.StatusOK, sess)
	}

	sess, err := h.sessions.OpenDocument(id, doc)
	if err != nil {
		return NewInternalError("failed to open project", err)
	}
	return c.JSON(http.StatusCreated, sess)
}
