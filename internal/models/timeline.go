package models

// TimelineEventType distinguishes travel from pauses on the timeline.
type TimelineEventType string

const (
	TimelinePath TimelineEventType = "path"
	TimelineWait TimelineEventType = "wait"
)

// TimelineEvent is one entry of a simulated timeline.
// Automatic rotation pauses are wait events with an empty WaitID.
type TimelineEvent struct {
	Type      TimelineEventType `json:"type" msgpack:"type"`
	Duration  float64           `json:"duration" msgpack:"duration"`
	StartTime float64           `json:"startTime" msgpack:"startTime"`
	WaitID    string            `json:"waitId,omitempty" msgpack:"waitId,omitempty"`
	LineID    string            `json:"lineId,omitempty" msgpack:"lineId,omitempty"`
	Name      string            `json:"name,omitempty" msgpack:"name,omitempty"`
}

// TimelineResult is the output of a timeline simulation.
type TimelineResult struct {
	TotalTime float64         `json:"totalTime" msgpack:"totalTime"`
	Timeline  []TimelineEvent `json:"timeline" msgpack:"timeline"`
}

// SegmentStats summarises a single traversed line.
type SegmentStats struct {
	LineID string  `json:"lineId"`
	Length float64 `json:"length"`
	Time   float64 `json:"time"`
}

// PathStatistics is the aggregate view shown by the editor's statistics panel.
type PathStatistics struct {
	TotalDistance float64        `json:"totalDistance"`
	TotalTime     float64        `json:"totalTime"`
	TravelTime    float64        `json:"travelTime"`
	WaitTime      float64        `json:"waitTime"`
	RotationTime  float64        `json:"rotationTime"`
	Formatted     string         `json:"formatted"`
	Segments      []SegmentStats `json:"segments"`
}
