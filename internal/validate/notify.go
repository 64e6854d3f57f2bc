package validate

import (
	"fmt"

	"github.com/pedro-visualizer/backend/internal/models"
)

const (
	successTimeoutMs = 3000
	warningTimeoutMs = 6000
)

// NotificationFor summarises validator output as a toast payload.
func NotificationFor(markers []models.CollisionMarker) models.Notification {
	if len(markers) == 0 {
		return models.Notification{
			Message:   "No collisions detected",
			Type:      models.NotifySuccess,
			TimeoutMs: successTimeoutMs,
		}
	}

	var boundary, obstacle int
	for _, m := range markers {
		switch m.Type {
		case models.CollisionBoundary:
			boundary++
		case models.CollisionObstacle:
			obstacle++
		}
	}

	msg := fmt.Sprintf("%d collision%s detected", len(markers), plural(len(markers)))
	if boundary > 0 && obstacle > 0 {
		msg += fmt.Sprintf(" (%d boundary, %d obstacle)", boundary, obstacle)
	}
	return models.Notification{
		Message:   msg,
		Type:      models.NotifyWarning,
		TimeoutMs: warningTimeoutMs,
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
