package models

// CollisionType is the kind of intersection a validator reports.
type CollisionType string

const (
	CollisionBoundary CollisionType = "boundary"
	CollisionObstacle CollisionType = "obstacle"
)

// CollisionMarker flags a spot where the robot leaves the field or hits an obstacle.
type CollisionMarker struct {
	Type    CollisionType `json:"type"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	LineID  string        `json:"lineId,omitempty"`
	ShapeID string        `json:"shapeId,omitempty"`
	Message string        `json:"message,omitempty"`
}

// NotificationType is the severity of a user notification.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a toast payload returned to the caller for display.
type Notification struct {
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	TimeoutMs int              `json:"timeoutMs"`
}
