// Package models contains domain types for the path visualizer backend.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownHeading is returned when a point carries a heading kind that is not recognised.
var ErrUnknownHeading = errors.New("unknown heading kind")

// HeadingKind identifies the heading policy of a point.
type HeadingKind string

const (
	HeadingConstant   HeadingKind = "constant"
	HeadingLinear     HeadingKind = "linear"
	HeadingTangential HeadingKind = "tangential"
)

// Heading is the orientation policy attached to a point.
// The concrete types are ConstantHeading, LinearHeading and TangentialHeading.
type Heading interface {
	Kind() HeadingKind
}

// ConstantHeading holds a fixed absolute heading.
type ConstantHeading struct {
	Degrees float64
}

// LinearHeading interpolates the heading across the segment's traversal.
type LinearHeading struct {
	StartDeg float64
	EndDeg   float64
}

// TangentialHeading follows the direction of travel, flipped 180° when Reverse is set.
type TangentialHeading struct {
	Reverse bool
}

func (ConstantHeading) Kind() HeadingKind   { return HeadingConstant }
func (LinearHeading) Kind() HeadingKind     { return HeadingLinear }
func (TangentialHeading) Kind() HeadingKind { return HeadingTangential }

// Point is a field coordinate with a heading policy.
// A nil Heading is treated as tangential.
type Point struct {
	X       float64
	Y       float64
	Heading Heading
}

// HeadingOrDefault returns the point's heading, defaulting to forward tangential.
func (p Point) HeadingOrDefault() Heading {
	if p.Heading == nil {
		return TangentialHeading{}
	}
	return p.Heading
}

// pointJSON is the flat wire form of Point used in .pp files.
type pointJSON struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Heading  HeadingKind `json:"heading,omitempty"`
	Degrees  *float64    `json:"degrees,omitempty"`
	StartDeg *float64    `json:"startDeg,omitempty"`
	EndDeg   *float64    `json:"endDeg,omitempty"`
	Reverse  *bool       `json:"reverse,omitempty"`
}

// MarshalJSON flattens the heading variant into the point object.
func (p Point) MarshalJSON() ([]byte, error) {
	out := pointJSON{X: p.X, Y: p.Y}
	switch h := p.Heading.(type) {
	case nil:
	case ConstantHeading:
		out.Heading = HeadingConstant
		out.Degrees = &h.Degrees
	case LinearHeading:
		out.Heading = HeadingLinear
		out.StartDeg = &h.StartDeg
		out.EndDeg = &h.EndDeg
	case TangentialHeading:
		out.Heading = HeadingTangential
		out.Reverse = &h.Reverse
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownHeading, p.Heading)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat wire form. Points without a heading
// (control points, shape vertices) decode with a nil Heading.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw pointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.X, p.Y = raw.X, raw.Y
	switch raw.Heading {
	case "":
		p.Heading = nil
	case HeadingConstant:
		p.Heading = ConstantHeading{Degrees: deref(raw.Degrees)}
	case HeadingLinear:
		p.Heading = LinearHeading{StartDeg: deref(raw.StartDeg), EndDeg: deref(raw.EndDeg)}
	case HeadingTangential:
		rev := false
		if raw.Reverse != nil {
			rev = *raw.Reverse
		}
		p.Heading = TangentialHeading{Reverse: rev}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHeading, raw.Heading)
	}
	return nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ClonePoints returns a copy of pts. Headings are value types, so a shallow
// element copy is a full copy.
func ClonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
