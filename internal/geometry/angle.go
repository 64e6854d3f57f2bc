// Package geometry provides angle helpers, heading evaluation and curve
// measurement for path segments.
package geometry

import "math"

// NormalizeAngle wraps deg into (-180, 180].
// Every transform that combines headings routes the result through here.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// AngleDiff returns the shortest signed rotation from -> to in degrees, in (-180, 180].
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
