package model

import "time"

const (
	EventVideoPublished     = "video.published"
	EventVideoDeleted       = "video.deleted"
	EventAssetCleanupFailed = "asset.cleanup_failed"
	EventUserRegistered     = "user.registered"
)

// Event is a domain notification published after a state change commits.
type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload"`
}

func NewEvent(eventType string, payload map[string]interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
}
