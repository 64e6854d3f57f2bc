// handlers_transform.go - Geometric transform handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/transform"
)

// TransformHandlerImpl implements the TransformHandler interface
type TransformHandlerImpl struct{}

// NewTransformHandler creates a new transform handler
func NewTransformHandler() TransformHandler {
	return &TransformHandlerImpl{}
}

// HandleMirror mirrors a document across the field's vertical centre line
func (h *TransformHandlerImpl) HandleMirror(c echo.Context) error {
	var data models.PathData
	if err := c.Bind(&data); err != nil {
		return NewBadRequestError("invalid path document", err)
	}
	return c.JSON(http.StatusOK, transform.Mirror(data))
}

// HandleTranslate moves every point of a document
func (h *TransformHandlerImpl) HandleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	return c.JSON(http.StatusOK, transform.Translate(req.Data, req.DX, req.DY))
}

// HandleRotate rotates a document about a pivot, the field centre by default
func (h *TransformHandlerImpl) HandleRotate(c echo.Context) error {
	var req rotateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	cx, cy := orCenter(req.CX), orCenter(req.CY)
	return c.JSON(http.StatusOK, transform.Rotate(req.Data, req.Angle, cx, cy))
}

// HandleFlip reflects a document across a vertical or horizontal line
func (h *TransformHandlerImpl) HandleFlip(c echo.Context) error {
	var req flipRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Axis == "" {
		return NewValidationError("axis")
	}

	out, err := transform.Flip(req.Data, req.Axis, orCenter(req.Center))
	if err != nil {
		return fromDomainError("flip failed", err)
	}
	return c.JSON(http.StatusOK, out)
}

// HandleReverse reverses the direction of travel of a document
func (h *TransformHandlerImpl) HandleReverse(c echo.Context) error {
	var data models.PathData
	if err := c.Bind(&data); err != nil {
		return NewBadRequestError("invalid path document", err)
	}
	return c.JSON(http.StatusOK, transform.Reverse(data))
}

func orCenter(v *float64) float64 {
	if v == nil {
		return transform.FieldCenter
	}
	return *v
}

// Request types

type translateRequest struct {
	Data models.PathData `json:"data"`
	DX   float64         `json:"dx"`
	DY   float64         `json:"dy"`
}

type rotateRequest struct {
	Data  models.PathData `json:"data"`
	Angle float64         `json:"angle"`
	CX    *float64        `json:"cx,omitempty"`
	CY    *float64        `json:"cy,omitempty"`
}

type flipRequest struct {
	Data   models.PathData `json:"data"`
	Axis   transform.Axis  `json:"axis"`
	Center *float64        `json:"center,omitempty"`
}
