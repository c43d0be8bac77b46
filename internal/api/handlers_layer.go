// handlers_layer.go - Layer editing handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
)

type addLayerRequest struct {
	Type models.LayerType `json:"type"`
}

func (r *addLayerRequest) validate() error {
	if !r.Type.Valid() {
		return NewValidationError("type")
	}
	return nil
}

type reorderLayerRequest struct {
	Index *int `json:"index"`
}

func (r *reorderLayerRequest) validate() error {
	if r.Index == nil {
		return NewValidationError("index")
	}
	return nil
}

type applyPresetRequest struct {
	Preset string `json:"preset"`
}

func (r *applyPresetRequest) validate() error {
	if r.Preset == "" {
		return NewValidationError("preset")
	}
	return nil
}

// HandleListLayers returns the layers of a session in array order.
func (h *Handler) HandleListLayers(c echo.Context) error {
	id := c.Param("id")
	layers, err := h.sessions.Layers(id)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusOK, layers)
}

// HandleGetLayer returns one layer.
func (h *Handler) HandleGetLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	l, err := h.sessions.Layer(id, layerID)
	if err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusOK, l)
}

// HandleAddLayer adds a layer with the defaults of its type.
func (h *Handler) HandleAddLayer(c echo.Context) error {
	id := c.Param("id")
	var req addLayerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	l, err := h.sessions.AddLayer(id, req.Type)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusCreated, l)
}

// HandleUpdateLayer merges a partial update into a layer.
func (h *Handler) HandleUpdateLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	var patch models.LayerPatch
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if patch.IsEmpty() {
		return NewBadRequestError("update contains no fields", nil)
	}
	if patch.Opacity != nil && (*patch.Opacity < 0 || *patch.Opacity > 1) {
		return NewValidationError("opacity")
	}

	l, err := h.sessions.UpdateLayer(id, layerID, patch)
	if err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusOK, l)
}

// HandleDeleteLayer removes a layer.
func (h *Handler) HandleDeleteLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	if err := h.sessions.DeleteLayer(id, layerID); err != nil {
		return editError(err, id, layerID)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleDuplicateLayer copies a layer next to the original.
func (h *Handler) HandleDuplicateLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	l, err := h.sessions.DuplicateLayer(id, layerID)
	if err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusCreated, l)
}

// HandleReorderLayer moves a layer to a new array index and returns the
// renumbered layers.
func (h *Handler) HandleReorderLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	var req reorderLayerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	layers, err := h.sessions.ReorderLayer(id, layerID, *req.Index)
	if err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusOK, layers)
}

// HandleSelectLayer marks a layer as selected.
func (h *Handler) HandleSelectLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	if err := h.sessions.SelectLayer(id, layerID); err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusOK, map[string]string{"selectedLayerId": layerID})
}

// HandleCopyLayer puts a layer on the clipboard.
func (h *Handler) HandleCopyLayer(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	if err := h.sessions.CopyLayer(id, layerID); err != nil {
		return editError(err, id, layerID)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandlePasteLayer adds the clipboard layer to a session.
func (h *Handler) HandlePasteLayer(c echo.Context) error {
	id := c.Param("id")
	l, err := h.sessions.PasteLayer(id)
	if err != nil {
		return editError(err, id, "")
	}
	return c.JSON(http.StatusCreated, l)
}

// HandleApplyPreset applies a named preset to a layer.
func (h *Handler) HandleApplyPreset(c echo.Context) error {
	id, layerID := c.Param("id"), c.Param("layerId")
	var req applyPresetRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	p, ok := h.presets.Lookup(req.Preset)
	if !ok {
		return NewNotFoundError("preset", req.Preset)
	}
	l, err := h.sessions.ApplyPreset(id, layerID, p)
	if err != nil {
		return editError(err, id, layerID)
	}
	return c.JSON(http.StatusOK, l)
}
