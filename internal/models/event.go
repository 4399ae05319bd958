package models

// EventType names a broadcast message pushed to display sessions.
type EventType string

const (
	EventConfig        EventType = "config"
	EventSettings      EventType = "settings"
	EventHistory       EventType = "history"
	EventHistoryAppend EventType = "history_append"
	EventSpin          EventType = "spin"
)

// Event is the wire envelope for the real-time channel.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// SpinPayload correlates all results of one spin request in a single event so
// displays do not reassemble it from individual history appends.
type SpinPayload struct {
	Participant string   `json:"participant"`
	Results     []string `json:"results"`
}
