// Package transform implements the rigid and affine edits applied to whole
// path documents: mirror, translate, rotate, flip and reverse.
//
// Every function is pure. The input document is cloned first and only the
// clone is modified.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/pedro-visualizer/backend/internal/geometry"
	"github.com/pedro-visualizer/backend/internal/models"
)

// FieldSize is the width and height of the field in path units.
const FieldSize = 144.0

// FieldCenter is the default mirror and flip line.
const FieldCenter = FieldSize / 2

// Axis selects the reflection line for Flip.
type Axis string

const (
	// AxisX reflects across the vertical line x = center.
	AxisX Axis = "x"
	// AxisY reflects across the horizontal line y = center.
	AxisY Axis = "y"
)

// ErrInvalidAxis is returned by Flip for an axis other than "x" or "y".
var ErrInvalidAxis = errors.New("invalid flip axis")

// pointFunc maps a single point, coordinates and heading.
type pointFunc func(models.Point) models.Point

// mapPoints applies fn to every point of the document: the start point, line
// end and control points, and shape vertices.
func mapPoints(data models.PathData, fn pointFunc) models.PathData {
	out := data.Clone()
	out.StartPoint = fn(out.StartPoint)
	for i := range out.Lines {
		l := &out.Lines[i]
		l.EndPoint = fn(l.EndPoint)
		for j := range l.ControlPoints {
			l.ControlPoints[j] = fn(l.ControlPoints[j])
		}
	}
	for i := range out.Shapes {
		s := &out.Shapes[i]
		for j := range s.Vertices {
			s.Vertices[j] = fn(s.Vertices[j])
		}
	}
	return out
}

// mapHeading applies fn to the angle values of constant and linear headings.
// Tangential headings are derived from travel and are left alone.
func mapHeading(h models.Heading, fn func(float64) float64) models.Heading {
	switch v := h.(type) {
	case models.ConstantHeading:
		return models.ConstantHeading{Degrees: geometry.NormalizeAngle(fn(v.Degrees))}
	case models.LinearHeading:
		return models.LinearHeading{
			StartDeg: geometry.NormalizeAngle(fn(v.StartDeg)),
			EndDeg:   geometry.NormalizeAngle(fn(v.EndDeg)),
		}
	default:
		return h
	}
}

func mirrorAngle(a float64) float64 { return 180 - a }
func negateAngle(a float64) float64 { return -a }

// Mirror reflects the document across the field's vertical centerline,
// x' = 144 - x. Constant and linear headings become 180 - angle, normalized
// to (-180, 180], so applying Mirror twice returns headings in that range.
func Mirror(data models.PathData) models.PathData {
	return mapPoints(data, func(p models.Point) models.Point {
		p.X = FieldSize - p.X
		p.Heading = mapHeading(p.Heading, mirrorAngle)
		return p
	})
}

// Translate moves every point by (dx, dy). Headings are unchanged.
func Translate(data models.PathData, dx, dy float64) models.PathData {
	return mapPoints(data, func(p models.Point) models.Point {
		p.X += dx
		p.Y += dy
		return p
	})
}

// Rotate turns every point by angleDeg (counter-clockwise) about (cx, cy).
// Constant and linear headings are rotated by the same angle.
func Rotate(data models.PathData, angleDeg, cx, cy float64) models.PathData {
	if angleDeg == 0 {
		return data.Clone()
	}
	sin, cos := math.Sincos(geometry.Radians(angleDeg))
	return mapPoints(data, func(p models.Point) models.Point {
		dx, dy := p.X-cx, p.Y-cy
		p.X = cx + dx*cos - dy*sin
		p.Y = cy + dx*sin + dy*cos
		p.Heading = mapHeading(p.Heading, func(a float64) float64 { return a + angleDeg })
		return p
	})
}

// Flip reflects the document across x = center (AxisX) or y = center (AxisY).
// An x flip maps headings to 180 - angle, a y flip negates them.
func Flip(data models.PathData, axis Axis, center float64) (models.PathData, error) {
	switch axis {
	case AxisX:
		return mapPoints(data, func(p models.Point) models.Point {
			p.X = 2*center - p.X
			p.Heading = mapHeading(p.Heading, mirrorAngle)
			return p
		}), nil
	case AxisY:
		return mapPoints(data, func(p models.Point) models.Point {
			p.Y = 2*center - p.Y
			p.Heading = mapHeading(p.Heading, negateAngle)
			return p
		}), nil
	default:
		return models.PathData{}, fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
	}
}

// Reverse rebuilds the document so the robot drives it end to start.
//
// The last end point becomes the start point, each line ends at what used to
// be its start, control points run backwards and before/after waits trade
// places. The sequence is reversed as a whole. Linear headings have their
// bounds swapped wherever a point is reused.
func Reverse(data models.PathData) models.PathData {
	if len(data.Lines) == 0 {
		return data.Clone()
	}

	src := data.Clone()
	n := len(src.Lines)
	out := models.PathData{
		StartPoint: swapLinear(src.Lines[n-1].EndPoint),
		Shapes:     src.Shapes,
		Lines:      make([]models.Line, 0, n),
	}

	for i := n - 1; i >= 0; i-- {
		l := src.Lines[i]
		l.EndPoint = swapLinear(src.SegmentStart(i))
		reversePoints(l.ControlPoints)
		l.SwapWaits()
		for j := range l.EventMarkers {
			l.EventMarkers[j].Position = 1 - l.EventMarkers[j].Position
		}
		out.Lines = append(out.Lines, l)
	}

	if src.Sequence != nil {
		out.Sequence = make(models.Sequence, len(src.Sequence))
		for i, item := range src.Sequence {
			out.Sequence[len(src.Sequence)-1-i] = item
		}
	}
	return out
}

func swapLinear(p models.Point) models.Point {
	if h, ok := p.Heading.(models.LinearHeading); ok {
		p.Heading = models.LinearHeading{StartDeg: h.EndDeg, EndDeg: h.StartDeg}
	}
	return p
}

func reversePoints(pts []models.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
