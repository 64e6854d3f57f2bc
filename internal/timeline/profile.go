package timeline

import "math"

// TravelTime returns the time to cover distance d from rest to rest under a
// trapezoidal velocity profile bounded by vMax, with acceleration accel and
// deceleration decel. The profile degenerates to a triangle when vMax is
// never reached.
func TravelTime(d, vMax, accel, decel float64) float64 {
	if d <= 0 {
		return 0
	}

	// peak velocity if the robot accelerates then immediately decelerates
	vPeak := math.Sqrt(2 * d * accel * decel / (accel + decel))
	if vPeak <= vMax {
		return vPeak/accel + vPeak/decel
	}

	accelDist := vMax * vMax / (2 * accel)
	decelDist := vMax * vMax / (2 * decel)
	cruise := (d - accelDist - decelDist) / vMax
	return vMax/accel + cruise + vMax/decel
}

// RotationTime returns the time to turn through diffDeg at aVelocity rad/s.
func RotationTime(diffDeg, aVelocity float64) float64 {
	return math.Abs(diffDeg) * math.Pi / 180 / aVelocity
}
