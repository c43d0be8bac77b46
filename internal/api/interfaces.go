// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/presets"
	"github.com/logo-studio/backend/internal/session"
)

// SessionHandler handles editing session lifecycle operations
type SessionHandler interface {
	HandleCreateSession(c echo.Context) error
	HandleGetSession(c echo.Context) error
	HandleDeleteSession(c echo.Context) error
	HandleSessionKeepAlive(c echo.Context) error
	HandleSetCanvas(c echo.Context) error
}

// LayerHandler handles layer editing operations
type LayerHandler interface {
	HandleListLayers(c echo.Context) error
	HandleGetLayer(c echo.Context) error
	HandleAddLayer(c echo.Context) error
	HandleUpdateLayer(c echo.Context) error
	HandleDeleteLayer(c echo.Context) error
	HandleDuplicateLayer(c echo.Context) error
	HandleReorderLayer(c echo.Context) error
	HandleSelectLayer(c echo.Context) error
	HandleCopyLayer(c echo.Context) error
	HandlePasteLayer(c echo.Context) error
	HandleApplyPreset(c echo.Context) error
}

// HistoryHandler handles undo/redo operations
type HistoryHandler interface {
	HandleGetHistory(c echo.Context) error
	HandleUndo(c echo.Context) error
	HandleRedo(c echo.Context) error
	HandleJumpHistory(c echo.Context) error
}

// RenderHandler handles SVG rendering and export
type RenderHandler interface {
	HandleRenderSession(c echo.Context) error
	HandleRenderDocument(c echo.Context) error
	HandleExportSession(c echo.Context) error
	HandleListPresets(c echo.Context) error
}

// ProjectHandler handles saved project operations
type ProjectHandler interface {
	HandleSaveProject(c echo.Context) error
	HandleListProjects(c echo.Context) error
	HandleGetProject(c echo.Context) error
	HandleDeleteProject(c echo.Context) error
	HandleRenameProject(c echo.Context) error
	HandleOpenProject(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// SessionManager defines the interface for session management
// This allows mocking in tests
type SessionManager interface {
	CreateSession(canvas *models.CanvasSettings) (*models.EditSession, error)
	OpenDocument(projectID string, doc *models.ProjectDocument) (*models.EditSession, error)
	GetSession(id string) (*models.EditSession, bool)
	TouchSession(id string) bool
	DeleteSession(id string) bool
	SessionCount() int

	Layers(id string) ([]models.Layer, error)
	Layer(id, layerID string) (models.Layer, error)
	SelectLayer(id, layerID string) error
	AddLayer(id string, t models.LayerType) (models.Layer, error)
	UpdateLayer(id, layerID string, patch models.LayerPatch) (models.Layer, error)
	DeleteLayer(id, layerID string) error
	DuplicateLayer(id, layerID string) (models.Layer, error)
	ReorderLayer(id, layerID string, index int) ([]models.Layer, error)
	SetCanvas(id string, canvas models.CanvasSettings) (*models.EditSession, error)
	ApplyPreset(id, layerID string, p session.Preset) (models.Layer, error)
	CopyLayer(id, layerID string) error
	PasteLayer(id string) (models.Layer, error)

	LoadDocument(id, projectID string, doc *models.ProjectDocument) (*models.EditSession, error)
	Document(id, name string) (*models.ProjectDocument, error)
	SetProjectID(id, projectID string) error

	History(id string) (models.HistoryState, error)
	Undo(id string) (models.HistoryState, error)
	Redo(id string) (models.HistoryState, error)
	JumpTo(id string, index int) (models.HistoryState, error)
	Render(id string) (string, error)
}

// PresetCatalog is the read side of a preset library.
type PresetCatalog interface {
	List() []presets.Preset
	Lookup(name string) (presets.Preset, bool)
	IconNames() []string
}

var (
	_ SessionManager = (*session.Manager)(nil)
	_ PresetCatalog  = (*presets.Library)(nil)
)
