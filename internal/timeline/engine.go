// Package timeline simulates a path document into a wall-clock timeline.
//
// Segments are timed with a trapezoidal velocity profile over their curve
// length. Heading changes larger than RotationThreshold insert an automatic
// rotation pause, and explicit waits and rotate commands are added in
// sequence order.
package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/pedro-visualizer/backend/internal/geometry"
	"github.com/pedro-visualizer/backend/internal/models"
)

// RotationThreshold is the smallest heading change, in radians, that gets
// its own rotation pause before a segment.
const RotationThreshold = 0.1

var (
	// ErrUnknownLine is returned when a path item names a line that is not in the document.
	ErrUnknownLine = errors.New("sequence references unknown line")
	// ErrInvalidSettings is returned when a velocity or acceleration limit is not positive.
	ErrInvalidSettings = errors.New("invalid simulation settings")
)

// ValidateSettings rejects limits that would make travel or rotation time
// infinite or undefined.
func ValidateSettings(s models.Settings) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"maxVelocity", s.MaxVelocity},
		{"maxAcceleration", s.MaxAcceleration},
		{"maxDeceleration", s.MaxDeceleration},
		{"aVelocity", s.AVelocity},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSettings, c.name, c.value)
		}
	}
	return nil
}

// CalculatePathTime walks sequence (or lines in order when sequence is
// empty) from startPoint and returns the total time and the timeline.
//
// A path item whose line id is not present in lines fails with ErrUnknownLine.
func CalculatePathTime(startPoint models.Point, lines []models.Line, settings models.Settings, sequence models.Sequence) (models.TimelineResult, error) {
	sim, err := simulate(startPoint, lines, settings, sequence)
	if err != nil {
		return models.TimelineResult{}, err
	}
	return models.TimelineResult{TotalTime: sim.total, Timeline: sim.events}, nil
}

// Simulate runs CalculatePathTime over a whole document.
func Simulate(data models.PathData, settings models.Settings) (models.TimelineResult, error) {
	return CalculatePathTime(data.StartPoint, data.Lines, settings, data.Sequence)
}

// simulator carries the robot state while the sequence is walked.
type simulator struct {
	settings models.Settings
	lines    map[string]models.Line

	pos          models.Point
	heading      float64
	headingKnown bool

	total    float64
	events   []models.TimelineEvent
	segments []models.SegmentStats

	travelTime   float64
	waitTime     float64
	rotationTime float64
	distance     float64
}

func simulate(startPoint models.Point, lines []models.Line, settings models.Settings, sequence models.Sequence) (*simulator, error) {
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	sim := &simulator{
		settings: settings,
		lines:    make(map[string]models.Line, len(lines)),
		pos:      startPoint,
		events:   make([]models.TimelineEvent, 0, len(lines)*2),
	}
	for _, l := range lines {
		sim.lines[l.ID] = l
	}
	sim.heading, sim.headingKnown = geometry.PointHeading(startPoint)

	if len(sequence) == 0 {
		for _, l := range lines {
			sim.traverse(l)
		}
		return sim, nil
	}

	if err := sim.walk(sequence, nil); err != nil {
		return nil, err
	}
	return sim, nil
}

// walk plays seq. scopes holds the ids of the macro items being expanded,
// outermost first.
func (s *simulator) walk(seq models.Sequence, scopes []string) error {
	for _, item := range seq {
		switch it := item.(type) {
		case models.PathItem:
			id, ok := models.ResolveScopedID(it.LineID, scopes, s.hasLine)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownLine, it.LineID)
			}
			s.traverse(s.lines[id])
		case models.WaitItem:
			d := it.DurationMs / 1000
			s.emit(models.TimelineEvent{Type: models.TimelineWait, Duration: d, WaitID: it.ID, Name: it.Name})
			s.waitTime += d
		case models.RotateItem:
			target := geometry.NormalizeAngle(it.Degrees)
			var d float64
			if s.headingKnown {
				d = RotationTime(geometry.AngleDiff(s.heading, target), s.settings.AVelocity)
			}
			s.emit(models.TimelineEvent{Type: models.TimelineWait, Duration: d, WaitID: it.ID, Name: it.Name})
			s.rotationTime += d
			s.heading, s.headingKnown = target, true
		case models.MacroItem:
			inner := append(scopes[:len(scopes):len(scopes)], it.ID)
			if err := s.walk(it.InternalSequence, inner); err != nil {
				return fmt.Errorf("macro %s: %w", it.ID, err)
			}
		default:
			return fmt.Errorf("%w: %T", models.ErrUnknownSequenceKind, item)
		}
	}
	return nil
}

func (s *simulator) hasLine(id string) bool {
	_, ok := s.lines[id]
	return ok
}

// traverse times one segment from the current position to l's end point.
func (s *simulator) traverse(l models.Line) {
	if l.WaitBefore && l.WaitBeforeMs > 0 {
		d := l.WaitBeforeMs / 1000
		s.emit(models.TimelineEvent{Type: models.TimelineWait, Duration: d, WaitID: l.ID + "-wait-before", LineID: l.ID, Name: l.WaitBeforeName})
		s.waitTime += d
	}

	required := geometry.StartHeading(s.pos, l)
	if s.headingKnown {
		diff := geometry.AngleDiff(s.heading, required)
		if math.Abs(geometry.Radians(diff)) > RotationThreshold {
			d := RotationTime(diff, s.settings.AVelocity)
			s.emit(models.TimelineEvent{Type: models.TimelineWait, Duration: d, LineID: l.ID})
			s.rotationTime += d
		}
	}

	length := geometry.SegmentCurve(s.pos, l).Length()
	travel := TravelTime(length, s.settings.MaxVelocity, s.settings.MaxAcceleration, s.settings.MaxDeceleration)
	s.emit(models.TimelineEvent{Type: models.TimelinePath, Duration: travel, LineID: l.ID})
	s.travelTime += travel
	s.distance += length
	s.segments = append(s.segments, models.SegmentStats{LineID: l.ID, Length: length, Time: travel})

	s.heading = geometry.EndHeading(s.pos, l)
	s.headingKnown = true
	s.pos = l.EndPoint

	if l.WaitAfter && l.WaitAfterMs > 0 {
		d := l.WaitAfterMs / 1000
		s.emit(models.TimelineEvent{Type: models.TimelineWait, Duration: d, WaitID: l.ID + "-wait-after", LineID: l.ID, Name: l.WaitAfterName})
		s.waitTime += d
	}
}

func (s *simulator) emit(ev models.TimelineEvent) {
	ev.StartTime = s.total
	s.total += ev.Duration
	s.events = append(s.events, ev)
}
