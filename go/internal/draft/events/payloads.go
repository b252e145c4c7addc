// Package events defines the engine's outbound event feed: typed payloads
// wrapped in a JSON envelope, plus the sinks that deliver them. The engine
// does not care whether a sink streams over long-lived connections or is
// polled; it only guarantees a time-ordered feed per session.
package events

import (
	"time"

	"github.com/draftday/warroom/go/internal/models"
)

// Type identifies an event in the feed.
type Type string

const (
	TypeSessionStarted     Type = "SessionStarted"
	TypeSessionPaused      Type = "SessionPaused"
	TypeSessionResumed     Type = "SessionResumed"
	TypeSessionCompleted   Type = "SessionCompleted"
	TypePickStarted        Type = "PickStarted"
	TypePickCommitted      Type = "PickCommitted"
	TypeTimerTick          Type = "TimerTick"
	TypeNotableEventRaised Type = "NotableEventRaised"
)

// SessionStartedPayload announces the clock starting on pick 1.
type SessionStartedPayload struct {
	SessionID   string    `json:"session_id"`
	StartedAt   time.Time `json:"started_at"`
	TotalRounds int       `json:"total_rounds"`
	TotalPicks  int       `json:"total_picks"`
}

// SessionPausedPayload announces a pause; RemainingSec is the countdown time
// frozen for the current pick.
type SessionPausedPayload struct {
	SessionID    string    `json:"session_id"`
	PausedAt     time.Time `json:"paused_at"`
	RemainingSec float64   `json:"remaining_sec"`
}

// SessionResumedPayload announces a resume with the restored deadline.
type SessionResumedPayload struct {
	SessionID string    `json:"session_id"`
	ResumedAt time.Time `json:"resumed_at"`
	TimeoutAt time.Time `json:"timeout_at"`
}

// SessionCompletedPayload announces the final pick has been made.
type SessionCompletedPayload struct {
	SessionID   string    `json:"session_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// PickStartedPayload announces a new pick going on the clock.
type PickStartedPayload struct {
	SessionID      string    `json:"session_id"`
	PickNumber     int       `json:"pick_number"`
	Round          int       `json:"round"`
	Slot           int       `json:"slot"`
	UserID         string    `json:"user_id"`
	StartedAt      time.Time `json:"started_at"`
	TimeoutAt      time.Time `json:"timeout_at"`
	SecondsPerPick int       `json:"seconds_per_pick"`
}

// PickCommittedPayload announces a committed pick, manual or auto.
type PickCommittedPayload struct {
	SessionID  string    `json:"session_id"`
	PickID     string    `json:"pick_id"`
	PickNumber int       `json:"pick_number"`
	Round      int       `json:"round"`
	Slot       int       `json:"slot"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	IsAutopick bool      `json:"is_autopick"`
	PickedAt   time.Time `json:"picked_at"`
}

// TimerTickPayload is the periodic countdown update while a pick is on the
// clock.
type TimerTickPayload struct {
	SessionID        string    `json:"session_id"`
	PickNumber       int       `json:"pick_number"`
	Slot             int       `json:"slot"`
	TimeRemainingSec int       `json:"time_remaining_sec"`
	TickedAt         time.Time `json:"ticked_at"`
}

// NotableEventRaisedPayload carries a detector event to observers.
type NotableEventRaisedPayload struct {
	SessionID string              `json:"session_id"`
	Event     models.NotableEvent `json:"event"`
}
