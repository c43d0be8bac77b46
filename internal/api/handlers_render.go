// handlers_render.go - SVG preview and export handlers
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/presets"
)

// MIME types served by the render endpoints.
const (
	MIMEImageSVG        = "image/svg+xml"
	MIMEApplicationMsgp = "application/msgpack"
)

const defaultProjectName = "Untitled Logo"

// HandleRenderSession compiles the current scene of a session to SVG.
func (h *Handler) HandleRenderSession(c echo.Context) error {
	id := c.Param("id")
	svg, err := h.sessions.Render(id)
	if err != nil {
		return editError(err, id, "")
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, MIMEImageSVG, []byte(svg))
}

// HandleRenderDocument compiles a posted project document without creating a
// session.
func (h *Handler) HandleRenderDocument(c echo.Context) error {
	var doc models.ProjectDocument
	if err := c.Bind(&doc); err != nil {
		return NewBadRequestError("invalid project document", err)
	}
	if doc.LogoSettings.Width <= 0 || doc.LogoSettings.Height <= 0 {
		return NewValidationError("logoSettings")
	}

	svg := h.compiler.Compile(doc.Scene())
	return c.Blob(http.StatusOK, MIMEImageSVG, []byte(svg))
}

// HandleExportSession returns a session as a project document, as JSON or
// with ?format=msgpack as MessagePack.
func (h *Handler) HandleExportSession(c echo.Context) error {
	id := c.Param("id")
	name := c.QueryParam("name")
	if name == "" {
		name = defaultProjectName
	}

	doc, err := h.sessions.Document(id, name)
	if err != nil {
		return editError(err, id, "")
	}

	format := strings.ToLower(c.QueryParam("format"))
	switch format {
	case "", "json":
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(name, "json"))
		return c.JSON(http.StatusOK, doc)
	case "msgpack":
		data, err := models.MarshalMsgpack(doc)
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(name, "msgpack"))
		return c.Blob(http.StatusOK, MIMEApplicationMsgp, data)
	default:
		return NewValidationError("format")
	}
}

// HandleListPresets returns the available presets and icon names.
func (h *Handler) HandleListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"presets": h.presetList(),
		"icons":   h.presets.IconNames(),
	})
}

func (h *Handler) presetList() []presets.Preset {
	list := h.presets.List()
	if list == nil {
		return []presets.Preset{}
	}
	return list
}

// attachment builds a Content-Disposition value with a filesystem-safe name.
func attachment(name, ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	base := b.String()
	if base == "" {
		base = "logo"
	}
	return fmt.Sprintf("attachment; filename=%q", base+"."+ext)
}
