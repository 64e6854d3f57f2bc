package geometry

import (
	"github.com/jbeda/geom"
	"github.com/pedro-visualizer/backend/internal/models"
)

// LengthSamples is the number of chords used to approximate curve length.
const LengthSamples = 100

// Bezier is an arbitrary-degree Bézier curve. Points holds the start point,
// control points and end point in order.
type Bezier struct {
	Points []geom.Coord
}

// Coord converts a model point to a vector.
func Coord(p models.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

// SegmentCurve builds the curve traversed by line when starting at start.
func SegmentCurve(start models.Point, line models.Line) Bezier {
	pts := make([]geom.Coord, 0, len(line.ControlPoints)+2)
	pts = append(pts, Coord(start))
	for _, cp := range line.ControlPoints {
		pts = append(pts, Coord(cp))
	}
	pts = append(pts, Coord(line.EndPoint))
	return Bezier{Points: pts}
}

// IsStraight reports whether the curve has no control points.
func (b Bezier) IsStraight() bool {
	return len(b.Points) <= 2
}

// Eval returns the point at parameter t in [0, 1] using de Casteljau's algorithm.
func (b Bezier) Eval(t float64) geom.Coord {
	if len(b.Points) == 0 {
		return geom.Coord{}
	}
	work := make([]geom.Coord, len(b.Points))
	copy(work, b.Points)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = work[i].Plus(work[i+1].Minus(work[i]).Times(t))
		}
	}
	return work[0]
}

// Length returns the arc length. Straight segments are exact; curves are
// approximated by LengthSamples chords.
func (b Bezier) Length() float64 {
	if len(b.Points) < 2 {
		return 0
	}
	if b.IsStraight() {
		return b.Points[0].DistanceFrom(b.Points[1])
	}

	var total float64
	prev := b.Points[0]
	for i := 1; i <= LengthSamples; i++ {
		p := b.Eval(float64(i) / LengthSamples)
		total += prev.DistanceFrom(p)
		prev = p
	}
	return total
}

// Sample returns n+1 evenly parameterised points along the curve.
func (b Bezier) Sample(n int) []geom.Coord {
	if n < 1 {
		n = 1
	}
	out := make([]geom.Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, b.Eval(float64(i)/float64(n)))
	}
	return out
}

// StartTangent returns the direction of travel at t=0, or a zero vector for
// a degenerate curve.
func (b Bezier) StartTangent() geom.Coord {
	for i := 1; i < len(b.Points); i++ {
		d := b.Points[i].Minus(b.Points[0])
		if d.Magnitude() > 1e-9 {
			return d
		}
	}
	return geom.Coord{}
}

// EndTangent returns the direction of travel at t=1.
func (b Bezier) EndTangent() geom.Coord {
	last := len(b.Points) - 1
	for i := last - 1; i >= 0; i-- {
		d := b.Points[last].Minus(b.Points[i])
		if d.Magnitude() > 1e-9 {
			return d
		}
	}
	return geom.Coord{}
}
