package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick is one committed selection. Picks are append-only: once created they
// are never edited or removed.
type Pick struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	PickNumber int       `json:"pick_number"` // overall, 1-based
	Round      int       `json:"round"`
	Slot       int       `json:"slot"` // drafter position within the round's order
	PlayerID   uuid.UUID `json:"player_id"`
	IsAutopick bool      `json:"is_autopick"`
	PickedAt   time.Time `json:"picked_at"`
}
