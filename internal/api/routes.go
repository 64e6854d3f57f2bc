// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/macro"
	"github.com/pedro-visualizer/backend/internal/storage"
	"github.com/pedro-visualizer/backend/internal/validate"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store             storage.Store
	Scans             ScanManager
	Settings          *SettingsStore
	Importer          *macro.Importer
	PathsDir          string
	MacrosDir         string
	Version           string
	AllowFileDeletion bool
	LiveInterval      time.Duration
	WSMaxMessageKB    int
	// Validators run after the built-in boundary check on /api/validate.
	Validators []validate.Validator
}

// Handlers holds all handler instances
type Handlers struct {
	Health     HealthHandler
	Transform  TransformHandler
	Simulation SimulationHandler
	Macro      MacroHandler
	Files      FileHandler
	Events     EventHandler
	Settings   SettingsHandler
	Socket     *SimulationSocket

	allowFileDeletion bool
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	if deps.Settings == nil {
		deps.Settings, _ = NewSettingsStore("")
	}
	return &Handlers{
		Health:            NewHealthHandler(deps.Version),
		Transform:         NewTransformHandler(),
		Simulation:        NewSimulationHandler(deps.Settings, deps.Validators...),
		Macro:             NewMacroHandler(deps.Store, deps.Importer, deps.MacrosDir),
		Files:             NewFileHandler(deps.Store),
		Events:            NewEventHandler(deps.Scans, deps.PathsDir),
		Settings:          NewSettingsHandler(deps.Settings),
		Socket:            NewSimulationSocket(deps.Settings, deps.LiveInterval, deps.WSMaxMessageKB),
		allowFileDeletion: deps.AllowFileDeletion,
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	api := e.Group("/api")

	// Health check
	api.GET("/health", handlers.Health.HandleHealth)

	// Transforms
	tg := api.Group("/transform")
	tg.POST("/mirror", handlers.Transform.HandleMirror)
	tg.POST("/translate", handlers.Transform.HandleTranslate)
	tg.POST("/rotate", handlers.Transform.HandleRotate)
	tg.POST("/flip", handlers.Transform.HandleFlip)
	tg.POST("/reverse", handlers.Transform.HandleReverse)

	// Simulation
	api.POST("/timeline", handlers.Simulation.HandleTimeline)
	api.POST("/statistics", handlers.Simulation.HandleStatistics)
	api.POST("/validate", handlers.Simulation.HandleValidate)

	// Macros
	api.POST("/macro/import", handlers.Macro.HandleImportMacro)

	// Path documents
	fg := api.Group("/files")
	fg.GET("", handlers.Files.HandleListFiles)
	fg.POST("", handlers.Files.HandleCreateFile)
	fg.GET("/:id", handlers.Files.HandleGetFile)
	fg.PUT("/:id", handlers.Files.HandleUpdateFile)

	// Conditional delete based on config
	if handlers.allowFileDeletion {
		fg.DELETE("/:id", handlers.Files.HandleDeleteFile)
	}

	// Event marker scans
	api.GET("/events", handlers.Events.HandleScanEvents)
	api.POST("/events/scan", handlers.Events.HandleStartScan)
	api.GET("/events/scan/:jobId", handlers.Events.HandleScanStatus)

	// Robot profile
	api.GET("/settings", handlers.Settings.HandleGetSettings)
	api.PUT("/settings", handlers.Settings.HandleUpdateSettings)
	api.POST("/settings/reset", handlers.Settings.HandleResetSettings)

	// Live simulation
	api.GET("/ws/simulate", handlers.Socket.HandleWebSocket)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler
}
