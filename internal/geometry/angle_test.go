package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{720 + 45, 45},
		{-540, 180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "NormalizeAngle(%v)", tt.in)
	}
}

func TestNormalizeAngle_StableUnderRepeatedRotation(t *testing.T) {
	h := 37.5
	for i := 0; i < 1000; i++ {
		h = NormalizeAngle(h + 97)
		assert.True(t, h > -180 && h <= 180, "heading %v left range", h)
	}
	for i := 0; i < 1000; i++ {
		h = NormalizeAngle(h - 97)
	}
	assert.InDelta(t, 37.5, h, 1e-6)
}

func TestAngleDiff(t *testing.T) {
	assert.InDelta(t, 20, AngleDiff(170, -170), 1e-9)
	assert.InDelta(t, -20, AngleDiff(-170, 170), 1e-9)
	assert.InDelta(t, 90, AngleDiff(0, 90), 1e-9)
	assert.InDelta(t, math.Pi/2, Radians(90), 1e-12)
	assert.InDelta(t, 90, Degrees(math.Pi/2), 1e-12)
}
