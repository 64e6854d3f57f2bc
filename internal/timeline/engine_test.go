package timeline

import (
	"math"
	"testing"

	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() models.Settings {
	s := models.DefaultSettings()
	s.MaxVelocity = 10
	s.MaxAcceleration = 5
	s.MaxDeceleration = 5
	s.AVelocity = math.Pi / 2
	return s
}

func straightLine(id string, x, y float64) models.Line {
	return models.Line{ID: id, EndPoint: models.Point{X: x, Y: y, Heading: models.TangentialHeading{}}}
}

func TestTravelTime(t *testing.T) {
	t.Run("triangular profile", func(t *testing.T) {
		assert.InDelta(t, 2*math.Sqrt(2), TravelTime(10, 10, 5, 5), 1e-9)
	})

	t.Run("trapezoidal profile", func(t *testing.T) {
		// accelerate 2s over 10, cruise 80 at 10 => 8s, decelerate 2s over 10
		assert.InDelta(t, 12, TravelTime(100, 10, 5, 5), 1e-9)
	})

	t.Run("asymmetric limits", func(t *testing.T) {
		// a=2, b=8, d=10: vp = sqrt(2*10*16/10) = sqrt(32)
		vp := math.Sqrt(32)
		assert.InDelta(t, vp/2+vp/8, TravelTime(10, 100, 2, 8), 1e-9)
	})

	t.Run("profile boundary is continuous", func(t *testing.T) {
		// vp == vMax exactly at d = vMax^2 / a for symmetric limits
		d := 20.0
		assert.InDelta(t, TravelTime(d-1e-9, 10, 5, 5), TravelTime(d+1e-9, 10, 5, 5), 1e-6)
	})

	t.Run("zero distance", func(t *testing.T) {
		assert.Equal(t, 0.0, TravelTime(0, 10, 5, 5))
	})
}

func TestCalculatePathTime_SingleSegment(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{{ID: "l1", EndPoint: models.Point{X: 10, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}}}

	res, err := CalculatePathTime(start, lines, testSettings(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.828, res.TotalTime, 0.01)
	require.Len(t, res.Timeline, 1)
	assert.Equal(t, models.TimelinePath, res.Timeline[0].Type)
	assert.Equal(t, "l1", res.Timeline[0].LineID)
}

func TestCalculatePathTime_ExplicitWait(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{{ID: "l1", EndPoint: models.Point{X: 10, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}}}
	seq := models.Sequence{
		models.PathItem{LineID: "l1"},
		models.WaitItem{ID: "w1", Name: "score", DurationMs: 1000},
	}

	res, err := CalculatePathTime(start, lines, testSettings(), seq)
	require.NoError(t, err)
	assert.InDelta(t, 3.828, res.TotalTime, 0.01)
	require.Len(t, res.Timeline, 2)
	assert.Equal(t, models.TimelineWait, res.Timeline[1].Type)
	assert.Equal(t, "w1", res.Timeline[1].WaitID)
	assert.InDelta(t, 1.0, res.Timeline[1].Duration, 1e-12)
	assert.InDelta(t, res.Timeline[0].Duration, res.Timeline[1].StartTime, 1e-12)
}

func TestCalculatePathTime_RotationPause(t *testing.T) {
	start := models.Point{X: 0, Y: 0}
	lines := []models.Line{
		straightLine("l1", 10, 0),
		straightLine("l2", 10, 10),
	}

	res, err := CalculatePathTime(start, lines, testSettings(), nil)
	require.NoError(t, err)

	var rotations []models.TimelineEvent
	for _, ev := range res.Timeline {
		if ev.Type == models.TimelineWait && ev.WaitID == "" {
			rotations = append(rotations, ev)
		}
	}
	require.Len(t, rotations, 1)
	assert.InDelta(t, 1.0, rotations[0].Duration, 1e-9)
	assert.Equal(t, "l2", rotations[0].LineID)

	// rotation, then travel of the second segment
	require.Len(t, res.Timeline, 3)
	assert.Equal(t, models.TimelineWait, res.Timeline[1].Type)
	assert.Equal(t, models.TimelinePath, res.Timeline[2].Type)

	var sum float64
	for _, ev := range res.Timeline {
		sum += ev.Duration
	}
	assert.InDelta(t, sum, res.TotalTime, 1e-12)
}

func TestCalculatePathTime_SmallHeadingChangeIsIgnored(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{{ID: "l1", EndPoint: models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 5}}}}

	res, err := CalculatePathTime(start, lines, testSettings(), nil)
	require.NoError(t, err)
	assert.Len(t, res.Timeline, 1)
}

func TestCalculatePathTime_RotateItem(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{{ID: "l1", EndPoint: models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 0}}}}
	seq := models.Sequence{
		models.PathItem{LineID: "l1"},
		models.RotateItem{ID: "r1", Degrees: 180},
	}

	res, err := CalculatePathTime(start, lines, testSettings(), seq)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 2)
	assert.Equal(t, "r1", res.Timeline[1].WaitID)
	assert.InDelta(t, 2.0, res.Timeline[1].Duration, 1e-9)
}

func TestCalculatePathTime_LineWaits(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	l := models.Line{
		ID:             "l1",
		EndPoint:       models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 0}},
		WaitBefore:     true,
		WaitBeforeMs:   500,
		WaitBeforeName: "settle",
		WaitAfter:      true,
		WaitAfterMs:    250,
	}

	res, err := CalculatePathTime(start, []models.Line{l}, testSettings(), nil)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 3)
	assert.Equal(t, "settle", res.Timeline[0].Name)
	assert.Equal(t, models.TimelinePath, res.Timeline[1].Type)
	assert.InDelta(t, 2.828+0.75, res.TotalTime, 0.01)
}

func TestCalculatePathTime_MacroIsInlined(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{
		{ID: "l1", EndPoint: models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 0}}},
		{ID: "m__a", EndPoint: models.Point{X: 20, Heading: models.ConstantHeading{Degrees: 0}}},
	}
	seq := models.Sequence{
		models.PathItem{LineID: "l1"},
		models.MacroItem{ID: "m", InternalSequence: models.Sequence{
			models.WaitItem{ID: "m__w", DurationMs: 500},
			models.PathItem{LineID: "m__a"},
		}},
	}

	res, err := CalculatePathTime(start, lines, testSettings(), seq)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 3)
	assert.Equal(t, "m__w", res.Timeline[1].WaitID)
	assert.InDelta(t, 2*2.8284+0.5, res.TotalTime, 0.01)
}

func TestCalculatePathTime_NestedMacroResolvesThroughScopes(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{
		{ID: "out-1__in-1__a", EndPoint: models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 0}}},
	}
	seq := models.Sequence{
		models.MacroItem{ID: "out-1", InternalSequence: models.Sequence{
			models.MacroItem{ID: "out-1__in-1", InternalSequence: models.Sequence{
				models.PathItem{LineID: "in-1__a"},
			}},
		}},
	}

	res, err := CalculatePathTime(start, lines, testSettings(), seq)
	require.NoError(t, err)
	require.Len(t, res.Timeline, 1)
	assert.Equal(t, "out-1__in-1__a", res.Timeline[0].LineID)
	assert.InDelta(t, 2.828, res.TotalTime, 0.01)
}

func TestCalculatePathTime_SequenceOverridesLineOrder(t *testing.T) {
	start := models.Point{X: 0, Y: 0, Heading: models.ConstantHeading{Degrees: 0}}
	lines := []models.Line{
		{ID: "far", EndPoint: models.Point{X: 100, Heading: models.ConstantHeading{Degrees: 0}}},
		{ID: "near", EndPoint: models.Point{X: 10, Heading: models.ConstantHeading{Degrees: 0}}},
	}

	res, err := CalculatePathTime(start, lines, testSettings(), models.Sequence{models.PathItem{LineID: "near"}})
	require.NoError(t, err)
	require.Len(t, res.Timeline, 1)
	assert.InDelta(t, 2.828, res.TotalTime, 0.01)
}

func TestCalculatePathTime_Errors(t *testing.T) {
	start := models.Point{}
	lines := []models.Line{straightLine("l1", 10, 0)}

	t.Run("dangling line id", func(t *testing.T) {
		_, err := CalculatePathTime(start, lines, testSettings(), models.Sequence{models.PathItem{LineID: "missing"}})
		assert.ErrorIs(t, err, ErrUnknownLine)
	})

	t.Run("dangling line inside macro", func(t *testing.T) {
		seq := models.Sequence{models.MacroItem{ID: "m", InternalSequence: models.Sequence{models.PathItem{LineID: "gone"}}}}
		_, err := CalculatePathTime(start, lines, testSettings(), seq)
		assert.ErrorIs(t, err, ErrUnknownLine)
	})

	t.Run("zero acceleration", func(t *testing.T) {
		s := testSettings()
		s.MaxAcceleration = 0
		_, err := CalculatePathTime(start, lines, s, nil)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("zero angular velocity", func(t *testing.T) {
		s := testSettings()
		s.AVelocity = 0
		_, err := CalculatePathTime(start, lines, s, nil)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestStatistics(t *testing.T) {
	data := models.PathData{
		StartPoint: models.Point{},
		Lines: []models.Line{
			straightLine("l1", 10, 0),
			straightLine("l2", 10, 10),
		},
		Sequence: models.Sequence{
			models.PathItem{LineID: "l1"},
			models.WaitItem{ID: "w", DurationMs: 1500},
			models.PathItem{LineID: "l2"},
		},
	}

	stats, err := Statistics(data, testSettings())
	require.NoError(t, err)
	assert.InDelta(t, 20, stats.TotalDistance, 1e-9)
	assert.InDelta(t, 1.5, stats.WaitTime, 1e-9)
	assert.InDelta(t, 1.0, stats.RotationTime, 1e-9)
	assert.InDelta(t, 4*math.Sqrt(2), stats.TravelTime, 1e-9)
	assert.InDelta(t, stats.TravelTime+stats.WaitTime+stats.RotationTime, stats.TotalTime, 1e-9)
	assert.Equal(t, FormatTime(stats.TotalTime), stats.Formatted)
	require.Len(t, stats.Segments, 2)
	assert.Equal(t, "l2", stats.Segments[1].LineID)
}
