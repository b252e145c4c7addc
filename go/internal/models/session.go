package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus defines the lifecycle state of a draft session.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusPaused    SessionStatus = "PAUSED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// SessionSettings holds the fixed configuration of a draft session.
type SessionSettings struct {
	TotalRounds    int         `json:"total_rounds"`
	SecondsPerPick int         `json:"seconds_per_pick"`
	DraftOrder     []uuid.UUID `json:"draft_order"` // user ID per slot, 1-based slot = index+1
}

// TeamCount is the number of drafting teams, derived from the draft order.
func (s SessionSettings) TeamCount() int {
	return len(s.DraftOrder)
}

// TotalPicks is the number of pick slots in the whole draft.
func (s SessionSettings) TotalPicks() int {
	return s.TotalRounds * len(s.DraftOrder)
}

// SlotOf returns the 1-based draft slot of userID, or 0 if the user does not
// hold a slot in this session.
func (s SessionSettings) SlotOf(userID uuid.UUID) int {
	for i, id := range s.DraftOrder {
		if id == userID {
			return i + 1
		}
	}
	return 0
}

// UserAt returns the user ID holding the 1-based slot.
func (s SessionSettings) UserAt(slot int) uuid.UUID {
	return s.DraftOrder[slot-1]
}

// DraftSession is the durable state of one draft, as held by the store.
// CurrentPick is 1-based and monotonic; TotalPicks()+1 marks completion.
type DraftSession struct {
	ID            uuid.UUID       `json:"id"`
	Status        SessionStatus   `json:"status"`
	Settings      SessionSettings `json:"settings"`
	CurrentPick   int             `json:"current_pick"`
	TimerDeadline *time.Time      `json:"timer_deadline,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}
