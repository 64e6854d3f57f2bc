// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/scan"
)

// TransformHandler applies geometric transforms to path documents
type TransformHandler interface {
	HandleMirror(c echo.Context) error
	HandleTranslate(c echo.Context) error
	HandleRotate(c echo.Context) error
	HandleFlip(c echo.Context) error
	HandleReverse(c echo.Context) error
}

// SimulationHandler runs the timeline engine and validators
type SimulationHandler interface {
	HandleTimeline(c echo.Context) error
	HandleStatistics(c echo.Context) error
	HandleValidate(c echo.Context) error
}

// MacroHandler imports macro documents into a host path
type MacroHandler interface {
	HandleImportMacro(c echo.Context) error
}

// FileHandler manages stored path documents
type FileHandler interface {
	HandleListFiles(c echo.Context) error
	HandleCreateFile(c echo.Context) error
	HandleGetFile(c echo.Context) error
	HandleUpdateFile(c echo.Context) error
	HandleDeleteFile(c echo.Context) error
}

// EventHandler collects event marker names across a directory
type EventHandler interface {
	HandleScanEvents(c echo.Context) error
	HandleStartScan(c echo.Context) error
	HandleScanStatus(c echo.Context) error
}

// SettingsHandler reads and writes the robot profile
type SettingsHandler interface {
	HandleGetSettings(c echo.Context) error
	HandleUpdateSettings(c echo.Context) error
	HandleResetSettings(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// SettingsProvider supplies the active robot profile
// This allows substituting fixed settings in tests
type SettingsProvider interface {
	Current() models.Settings
}

// ScanManager defines the interface for directory scans
type ScanManager interface {
	StartJob(dir string) scan.Job
	Scan(ctx context.Context, dir string) (*scan.Result, error)
	GetJob(id string) (scan.Job, bool)
}
