package timeline

import "github.com/pedro-visualizer/backend/internal/models"

// Statistics simulates data and summarises distance and time per segment.
func Statistics(data models.PathData, settings models.Settings) (models.PathStatistics, error) {
	sim, err := simulate(data.StartPoint, data.Lines, settings, data.Sequence)
	if err != nil {
		return models.PathStatistics{}, err
	}

	segments := sim.segments
	if segments == nil {
		segments = []models.SegmentStats{}
	}
	return models.PathStatistics{
		TotalDistance: sim.distance,
		TotalTime:     sim.total,
		TravelTime:    sim.travelTime,
		WaitTime:      sim.waitTime,
		RotationTime:  sim.rotationTime,
		Formatted:     FormatTime(sim.total),
		Segments:      segments,
	}, nil
}
