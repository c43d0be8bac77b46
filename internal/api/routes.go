// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/logo-studio/backend/internal/render"
	"github.com/logo-studio/backend/internal/session"
	"github.com/logo-studio/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store              storage.Store
	SessionMgr         *session.Manager
	Presets            PresetCatalog
	Compiler           *render.Compiler
	Version            string
	WSMaxMessageSizeKB int
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Sessions SessionHandler
	Layers   LayerHandler
	History  HistoryHandler
	Render   RenderHandler
	Projects ProjectHandler
	Preview  *PreviewSocket
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	h := NewHandler(deps.SessionMgr, deps.Store, deps.Presets, deps.Compiler)
	return &Handlers{
		Health:   NewHealthHandler(deps.Version, deps.SessionMgr),
		Sessions: h,
		Layers:   h,
		History:  h,
		Render:   h,
		Projects: h,
		Preview:  NewPreviewSocket(h, int64(deps.WSMaxMessageSizeKB)*1024),
	}
}

// RegisterRoutes registers all API routes under /api
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Session routes
	sessions := apiGroup.Group("/sessions")
	sessions.POST("", handlers.Sessions.HandleCreateSession)
	sessions.GET("/:id", handlers.Sessions.HandleGetSession)
	sessions.DELETE("/:id", handlers.Sessions.HandleDeleteSession)
	sessions.POST("/:id/keepalive", handlers.Sessions.HandleSessionKeepAlive)
	sessions.PUT("/:id/canvas", handlers.Sessions.HandleSetCanvas)

	// Layer routes
	sessions.GET("/:id/layers", handlers.Layers.HandleListLayers)
	sessions.POST("/:id/layers", handlers.Layers.HandleAddLayer)
	sessions.GET("/:id/layers/:layerId", handlers.Layers.HandleGetLayer)
	sessions.PATCH("/:id/layers/:layerId", handlers.Layers.HandleUpdateLayer)
	sessions.DELETE("/:id/layers/:layerId", handlers.Layers.HandleDeleteLayer)
	sessions.POST("/:id/layers/:layerId/duplicate", handlers.Layers.HandleDuplicateLayer)
	sessions.POST("/:id/layers/:layerId/reorder", handlers.Layers.HandleReorderLayer)
	sessions.POST("/:id/layers/:layerId/select", handlers.Layers.HandleSelectLayer)
	sessions.POST("/:id/layers/:layerId/copy", handlers.Layers.HandleCopyLayer)
	sessions.POST("/:id/layers/:layerId/preset", handlers.Layers.HandleApplyPreset)
	sessions.POST("/:id/paste", handlers.Layers.HandlePasteLayer)

	// History routes
	sessions.GET("/:id/history", handlers.History.HandleGetHistory)
	sessions.POST("/:id/undo", handlers.History.HandleUndo)
	sessions.POST("/:id/redo", handlers.History.HandleRedo)
	sessions.POST("/:id/history/jump", handlers.History.HandleJumpHistory)

	// Render and export
	sessions.GET("/:id/render", handlers.Render.HandleRenderSession)
	sessions.GET("/:id/export", handlers.Render.HandleExportSession)
	apiGroup.POST("/render", handlers.Render.HandleRenderDocument)
	apiGroup.GET("/presets", handlers.Render.HandleListPresets)

	// Saved projects
	projects := apiGroup.Group("/projects")
	projects.POST("", handlers.Projects.HandleSaveProject)
	projects.GET("", handlers.Projects.HandleListProjects)
	projects.GET("/:id", handlers.Projects.HandleGetProject)
	projects.PUT("/:id", handlers.Projects.HandleRenameProject)
	projects.DELETE("/:id", handlers.Projects.HandleDeleteProject)
	projects.POST("/:id/open", handlers.Projects.HandleOpenProject)

	// Live preview
	apiGroup.GET("/ws/sessions/:id", handlers.Preview.HandleWebSocket)
}

// MiddlewareOptions tunes SetupMiddleware.
type MiddlewareOptions struct {
	RequestLogging   bool
	Compression      bool
	CompressionLevel int
	BodyLimit        string
	CORSOrigins      string
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !opts.RequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || strings.HasPrefix(path, "/api/ws/")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if opts.Compression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: opts.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/ws/")
			},
		}))
	}

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	if opts.CORSOrigins != "" {
		origins := strings.Split(opts.CORSOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
