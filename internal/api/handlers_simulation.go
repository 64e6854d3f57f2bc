// handlers_simulation.go - Timeline, statistics and validation handlers
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/timeline"
	"github.com/pedro-visualizer/backend/internal/validate"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEMsgpack is the content type for MessagePack responses
const MIMEMsgpack = "application/msgpack"

// SimulationHandlerImpl implements the SimulationHandler interface
type SimulationHandlerImpl struct {
	settings   SettingsProvider
	validators []validate.Validator
}

// NewSimulationHandler creates a new simulation handler. HandleValidate runs
// the field boundary check followed by validators.
func NewSimulationHandler(settings SettingsProvider, validators ...validate.Validator) SimulationHandler {
	return &SimulationHandlerImpl{settings: settings, validators: validators}
}

// HandleTimeline simulates a path and returns its timeline. Clients sending
// Accept: application/msgpack receive a MessagePack body.
func (h *SimulationHandlerImpl) HandleTimeline(c echo.Context) error {
	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid path document", err)
	}

	settings := req.resolveSettings(h.settings)
	result, err := timeline.CalculatePathTime(req.StartPoint, req.Lines, settings, req.Sequence)
	if err != nil {
		return fromDomainError("simulation failed", err)
	}

	resp := timelineResponse{
		TotalTime: result.TotalTime,
		Formatted: timeline.FormatTime(result.TotalTime),
		Timeline:  result.Timeline,
	}
	if resp.Timeline == nil {
		resp.Timeline = []models.TimelineEvent{}
	}

	if wantsMsgpack(c) {
		data, err := msgpack.Marshal(resp)
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		return c.Blob(http.StatusOK, MIMEMsgpack, data)
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleStatistics returns distance and time totals for a path
func (h *SimulationHandlerImpl) HandleStatistics(c echo.Context) error {
	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid path document", err)
	}

	stats, err := timeline.Statistics(req.PathData, req.resolveSettings(h.settings))
	if err != nil {
		return fromDomainError("statistics failed", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// HandleValidate checks document consistency and field boundaries
func (h *SimulationHandlerImpl) HandleValidate(c echo.Context) error {
	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid path document", err)
	}

	resp := validateResponse{Consistent: true, Problems: []string{}}
	if err := validate.CheckConsistency(req.PathData); err != nil {
		resp.Consistent = false
		resp.Problems = splitJoined(err)
	}

	chain := append(validate.Chain{validate.NewBoundaryValidator(req.resolveSettings(h.settings))}, h.validators...)
	markers := chain.Validate(req.PathData)
	if markers == nil {
		markers = []models.CollisionMarker{}
	}
	resp.Markers = markers
	resp.Notification = validate.NotificationFor(markers)

	b := validate.Bounds(req.PathData)
	resp.Extent = extent{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}

	return c.JSON(http.StatusOK, resp)
}

func wantsMsgpack(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMEMsgpack)
}

// splitJoined flattens an errors.Join result into its messages
func splitJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// Request/Response types

// simulateRequest is a path document with an optional settings override
type simulateRequest struct {
	models.PathData
	Settings *models.Settings `json:"settings,omitempty"`
}

func (r *simulateRequest) resolveSettings(p SettingsProvider) models.Settings {
	if r.Settings != nil {
		return *r.Settings
	}
	if p == nil {
		return models.DefaultSettings()
	}
	return p.Current()
}

type timelineResponse struct {
	TotalTime float64                `json:"totalTime" msgpack:"totalTime"`
	Formatted string                 `json:"formatted" msgpack:"formatted"`
	Timeline  []models.TimelineEvent `json:"timeline" msgpack:"timeline"`
}

type validateResponse struct {
	Consistent   bool                     `json:"consistent"`
	Problems     []string                 `json:"problems"`
	Markers      []models.CollisionMarker `json:"markers"`
	Notification models.Notification      `json:"notification"`
	Extent       extent                   `json:"extent"`
}

// extent is the rectangle swept by the path's sampled positions
type extent struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}
