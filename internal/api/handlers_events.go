// handlers_events.go - Event marker directory scan handlers
package api

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/scan"
)

// EventHandlerImpl implements the EventHandler interface
type EventHandlerImpl struct {
	scans      ScanManager
	defaultDir string
}

// NewEventHandler creates a new event handler. Requested directories are
// resolved inside defaultDir, and requests without one scan defaultDir.
func NewEventHandler(scans ScanManager, defaultDir string) EventHandler {
	return &EventHandlerImpl{scans: scans, defaultDir: defaultDir}
}

// HandleScanEvents scans a directory synchronously. Query: dir, relative to
// the paths directory.
func (h *EventHandlerImpl) HandleScanEvents(c echo.Context) error {
	dir := h.resolveDir(c.QueryParam("dir"))

	res, err := h.scans.Scan(c.Request().Context(), dir)
	if err != nil {
		return NewBadRequestError("failed to scan directory", err)
	}
	return c.JSON(http.StatusOK, res)
}

// HandleStartScan begins a background scan and returns the job
func (h *EventHandlerImpl) HandleStartScan(c echo.Context) error {
	var req startScanRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	job := h.scans.StartJob(h.resolveDir(req.Dir))
	return c.JSON(http.StatusAccepted, job)
}

// HandleScanStatus returns the state of a background scan
func (h *EventHandlerImpl) HandleScanStatus(c echo.Context) error {
	jobID := c.Param("jobId")
	job, ok := h.scans.GetJob(jobID)
	if !ok {
		return NewNotFoundError("scan job", jobID)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *EventHandlerImpl) resolveDir(dir string) string {
	return confinePath(h.defaultDir, dir)
}

// confinePath joins a client supplied path onto root. Absolute paths and ".."
// segments cannot climb above root.
func confinePath(root, p string) string {
	return filepath.Join(root, filepath.Clean(string(filepath.Separator)+p))
}

type startScanRequest struct {
	Dir string `json:"dir"`
}

var _ ScanManager = (*scan.Manager)(nil)
