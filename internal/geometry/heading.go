package geometry

import (
	"math"

	"github.com/jbeda/geom"
	"github.com/pedro-visualizer/backend/internal/models"
)

// StartHeading returns the robot heading in degrees required at the start of
// line when it is traversed from start. The heading policy is the one carried
// by the line's end point.
func StartHeading(start models.Point, line models.Line) float64 {
	switch h := line.EndPoint.HeadingOrDefault().(type) {
	case models.ConstantHeading:
		return NormalizeAngle(h.Degrees)
	case models.LinearHeading:
		return NormalizeAngle(h.StartDeg)
	case models.TangentialHeading:
		return tangentHeading(SegmentCurve(start, line).StartTangent(), h.Reverse)
	}
	return 0
}

// EndHeading returns the robot heading in degrees at the end of line.
func EndHeading(start models.Point, line models.Line) float64 {
	switch h := line.EndPoint.HeadingOrDefault().(type) {
	case models.ConstantHeading:
		return NormalizeAngle(h.Degrees)
	case models.LinearHeading:
		return NormalizeAngle(h.EndDeg)
	case models.TangentialHeading:
		return tangentHeading(SegmentCurve(start, line).EndTangent(), h.Reverse)
	}
	return 0
}

// PointHeading returns the fixed heading of a point when it has one.
// Tangential points report ok=false since their heading depends on travel.
func PointHeading(p models.Point) (deg float64, ok bool) {
	switch h := p.HeadingOrDefault().(type) {
	case models.ConstantHeading:
		return NormalizeAngle(h.Degrees), true
	case models.LinearHeading:
		return NormalizeAngle(h.StartDeg), true
	}
	return 0, false
}

func tangentHeading(dir geom.Coord, reverse bool) float64 {
	deg := Degrees(math.Atan2(dir.Y, dir.X))
	if reverse {
		deg += 180
	}
	return NormalizeAngle(deg)
}
