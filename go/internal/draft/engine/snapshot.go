package engine

import (
	"time"

	"github.com/draftday/warroom/go/internal/draft/needs"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
)

// Snapshot is an immutable projection of a session for observers. Nothing
// in it aliases engine state; clients may hold it as long as they like.
type Snapshot struct {
	SessionID   uuid.UUID            `json:"session_id"`
	Status      models.SessionStatus `json:"status"`
	TeamCount   int                  `json:"team_count"`
	TotalRounds int                  `json:"total_rounds"`
	TotalPicks  int                  `json:"total_picks"`

	CurrentPick      int        `json:"current_pick"`
	Round            int        `json:"round"`
	OnClockSlot      int        `json:"on_clock_slot"`
	OnClockUser      uuid.UUID  `json:"on_clock_user"`
	TimerDeadline    *time.Time `json:"timer_deadline,omitempty"`
	TimeRemainingSec int        `json:"time_remaining_sec"`

	Picks         []models.Pick                `json:"picks"`
	Rosters       map[int]*models.Roster       `json:"rosters"`
	Queues        map[uuid.UUID][]uuid.UUID    `json:"queues"`
	AvailablePool []models.Player              `json:"available_pool"`
	NotableEvents []models.NotableEvent        `json:"notable_events"`
	PositionNeeds map[int][]needs.PositionNeed `json:"position_needs"`
	PicksAway     map[int]int                  `json:"picks_away"`
}
