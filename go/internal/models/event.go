package models

import (
	"time"

	"github.com/google/uuid"
)

// NotableEventType classifies a notable draft event.
type NotableEventType string

const (
	NotableEventReach      NotableEventType = "reach"
	NotableEventQueueAlert NotableEventType = "queue_alert"
)

// NotableEvent is an immutable record appended to the session's event log
// when the detector fires on a committed pick.
type NotableEvent struct {
	ID          uuid.UUID        `json:"id"`
	SessionID   uuid.UUID        `json:"session_id"`
	Type        NotableEventType `json:"type"`
	PickNumber  int              `json:"pick_number"`
	PlayerID    uuid.UUID        `json:"player_id"`
	DrafterSlot int              `json:"drafter_slot"`
	// QueueOwner is set on queue_alert events: the user whose queue held the
	// player when someone else drafted them.
	QueueOwner *uuid.UUID `json:"queue_owner,omitempty"`
	// ADPDelta is set on reach events: how many picks ahead of ADP.
	ADPDelta  float64   `json:"adp_delta,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
