// Package validate checks path documents against the field and against
// themselves. Validators return collision markers as values; turning them
// into user notifications is left to the caller.
package validate

import (
	"fmt"

	"github.com/jbeda/geom"
	"github.com/pedro-visualizer/backend/internal/geometry"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/transform"
)

// BoundarySamples is the number of chords checked along each curved segment.
const BoundarySamples = 50

// Validator reports the places where a path collides with something.
type Validator interface {
	Validate(data models.PathData) []models.CollisionMarker
}

// Chain runs several validators and concatenates their markers.
type Chain []Validator

func (c Chain) Validate(data models.PathData) []models.CollisionMarker {
	var out []models.CollisionMarker
	for _, v := range c {
		out = append(out, v.Validate(data)...)
	}
	return out
}

// BoundaryValidator flags path points where the robot footprint would leave
// the field. Allowed is the field rectangle already shrunk by the robot's
// half size plus the safety margin.
type BoundaryValidator struct {
	Allowed geom.Rect
	Samples int
}

// NewBoundaryValidator builds a validator for the configured robot size.
func NewBoundaryValidator(s models.Settings) *BoundaryValidator {
	inset := geom.Coord{
		X: s.RWidth/2 + s.SafetyMargin,
		Y: s.RHeight/2 + s.SafetyMargin,
	}
	field := geom.Coord{X: transform.FieldSize, Y: transform.FieldSize}
	return &BoundaryValidator{
		Allowed: geom.Rect{Min: inset, Max: field.Minus(inset)},
		Samples: BoundarySamples,
	}
}

// Validate reports the start point if it is out of bounds and, for each
// line, the first sampled position that is. One marker per line at most.
func (v *BoundaryValidator) Validate(data models.PathData) []models.CollisionMarker {
	var out []models.CollisionMarker

	start := geometry.Coord(data.StartPoint)
	if !v.contains(start) {
		out = append(out, boundaryMarker(start, "", "start point outside field"))
	}

	for i, line := range data.Lines {
		curve := geometry.SegmentCurve(data.SegmentStart(i), line)
		n := 1
		if !curve.IsStraight() {
			n = v.Samples
		}
		for _, p := range curve.Sample(n)[1:] {
			if !v.contains(p) {
				out = append(out, boundaryMarker(p, line.ID,
					fmt.Sprintf("line %s leaves the field", line.ID)))
				break
			}
		}
	}
	return out
}

func (v *BoundaryValidator) contains(p geom.Coord) bool {
	if v.Allowed.Width() < 0 || v.Allowed.Height() < 0 {
		return false
	}
	return v.Allowed.ContainsRect(geom.Rect{Min: p, Max: p})
}

func boundaryMarker(p geom.Coord, lineID, msg string) models.CollisionMarker {
	return models.CollisionMarker{
		Type:    models.CollisionBoundary,
		X:       p.X,
		Y:       p.Y,
		LineID:  lineID,
		Message: msg,
	}
}

// Bounds returns the rectangle enclosing every sampled path position.
func Bounds(data models.PathData) geom.Rect {
	start := geometry.Coord(data.StartPoint)
	r := geom.Rect{Min: start, Max: start}
	for i, line := range data.Lines {
		for _, p := range geometry.SegmentCurve(data.SegmentStart(i), line).Sample(BoundarySamples) {
			r.ExpandToContainCoord(p)
		}
	}
	return r
}
