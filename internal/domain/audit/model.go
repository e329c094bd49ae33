package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is the canonical audit record handed back to callers after a
// workflow action. The timestamp is always UTC.
type Event struct {
	AuditID   uuid.UUID              `json:"audit_id"`
	Timestamp time.Time              `json:"timestamp"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details"`
}

// Log is one persisted row of the audit trail.
type Log struct {
	ID        uuid.UUID              `json:"id"`
	Action    string                 `json:"action"`
	CreatedAt time.Time              `json:"created_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// NewEvent mints an audit event with a fresh identifier and the current UTC
// time. Details may be nil.
func NewEvent(eventType string, details map[string]interface{}) *Event {
	return &Event{
		AuditID:   uuid.New(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Details:   details,
	}
}

// ToLog converts an event into its persisted representation.
func (e *Event) ToLog() *Log {
	return &Log{
		ID:        e.AuditID,
		Action:    e.EventType,
		CreatedAt: e.Timestamp,
		Metadata:  e.Details,
	}
}
