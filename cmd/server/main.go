package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/api"
	"github.com/logo-studio/backend/internal/config"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/presets"
	"github.com/logo-studio/backend/internal/render"
	"github.com/logo-studio/backend/internal/session"
	"github.com/logo-studio/backend/internal/storage"
	"github.com/logo-studio/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "LogoStudio.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Check if running in embedded mode (preview page built into binary)
	embeddedMode := web.HasEmbeddedFiles()

	// Initialize project storage
	projectStore, storeLocation, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer projectStore.Close()

	// Load presets: built-ins, overlaid with the user's file if configured
	library, err := loadPresets(cfg.Editor.PresetsFile)
	if err != nil {
		fmt.Printf("Failed to load presets: %v\n", err)
		os.Exit(1)
	}

	compiler := render.NewCompiler(render.WithIconResolver(library))

	// Initialize session manager
	sessionMgr := session.NewManager(session.Config{
		MaxSessions:    cfg.Editor.MaxSessions,
		HistoryMaxSize: cfg.Editor.HistoryMaxSize,
		DefaultCanvas: models.CanvasSettings{
			Width:           cfg.Editor.DefaultCanvasWidth,
			Height:          cfg.Editor.DefaultCanvasHeight,
			BackgroundColor: cfg.Editor.DefaultBackground,
		},
	}, session.WithCompiler(compiler))

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Editor.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessionMgr.CleanupOldSessions(time.Duration(cfg.Editor.SessionTimeoutMinutes) * time.Minute); n > 0 {
				fmt.Printf("[Manager] Cleanup removed %d idle sessions\n", n)
			}
		}
	}()

	api.ExposeErrorDetails = strings.EqualFold(cfg.Advanced.LogLevel, "debug")

	e := echo.New()
	e.HideBanner = true

	corsOrigins := ""
	if cfg.Server.EnableCORS {
		corsOrigins = cfg.Server.AllowOrigins
		if !embeddedMode || corsOrigins == "" {
			// Development mode - only allow the local dev server
			corsOrigins = "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000"
		}
	}
	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging:   cfg.Advanced.EnableRequestLogging,
		Compression:      cfg.Advanced.EnableCompression,
		CompressionLevel: cfg.Advanced.CompressionLevel,
		BodyLimit:        cfg.Server.BodyLimit,
		CORSOrigins:      corsOrigins,
	})

	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Store:              projectStore,
		SessionMgr:         sessionMgr,
		Presets:            library,
		Compiler:           compiler,
		Version:            Version,
		WSMaxMessageSizeKB: cfg.Advanced.WebSocketMaxMessageSize,
	}))

	// Register embedded preview page if available
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		} else {
			fmt.Println("Serving embedded preview page from binary")
		}
	}

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	mode := "Development"
	if embeddedMode {
		mode = "Air-Gapped (Embedded)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Logo Studio Server                              ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Storage:   %-46s║\n", cfg.Storage.Backend+" "+storeLocation)
	fmt.Printf("║  Presets:   %-46s║\n", fmt.Sprintf("%d presets, %d icons", len(library.List()), len(library.IconNames())))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}

// openStore opens the configured project backend.
func openStore(cfg *config.AppConfig) (storage.Store, string, error) {
	switch cfg.Storage.Backend {
	case config.BackendDuckDB:
		store, err := storage.NewDuckStore(cfg.Storage.DatabaseFile)
		return store, cfg.Storage.DatabaseFile, err
	default:
		store, err := storage.NewLocalStore(cfg.Storage.ProjectsDirectory)
		return store, cfg.Storage.ProjectsDirectory, err
	}
}

func loadPresets(userFile string) (*presets.Library, error) {
	library, err := presets.Default()
	if err != nil {
		return nil, err
	}
	if userFile == "" {
		return library, nil
	}
	if _, err := os.Stat(userFile); os.IsNotExist(err) {
		fmt.Printf("Warning: presets file %s not found, using built-ins\n", userFile)
		return library, nil
	}
	user, err := presets.LoadFile(userFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userFile, err)
	}
	return library.Merge(user), nil
}
