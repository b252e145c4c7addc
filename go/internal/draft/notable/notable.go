// Package notable detects noteworthy draft moments as picks commit: reaches
// (a player taken well ahead of consensus ADP) and queue alerts (a queued
// player sniped by another drafter). Detection runs synchronously inside the
// transition that commits the pick, so the events and the pick describe the
// same logical instant.
package notable

import (
	"time"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
)

// Config holds the detector's tunable thresholds.
type Config struct {
	// ReachThreshold is how many picks ahead of ADP a selection must land
	// before it counts as a reach. Kept configurable so the detector stays
	// testable across ADP-distribution assumptions.
	ReachThreshold float64 `yaml:"reach_threshold"`
}

// DefaultConfig uses a threshold wide enough to ignore ordinary ADP noise
// in a 12-team draft.
func DefaultConfig() Config {
	return Config{ReachThreshold: 12}
}

// Detector evaluates the reach and queue-alert rules for committed picks.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// OnPick evaluates both rules for a committed pick. playerADP is the drafted
// player's ADP in pick-number units; queueOwners are the users whose queues
// held the player at the moment of drafting (excluding the drafter, which
// the caller filters). Returned events are in reach-then-alerts order.
func (d *Detector) OnPick(pick models.Pick, playerADP float64, queueOwners []uuid.UUID, now time.Time) []models.NotableEvent {
	var events []models.NotableEvent

	if delta := playerADP - float64(pick.PickNumber); delta > d.cfg.ReachThreshold {
		events = append(events, models.NotableEvent{
			ID:          uuid.New(),
			SessionID:   pick.SessionID,
			Type:        models.NotableEventReach,
			PickNumber:  pick.PickNumber,
			PlayerID:    pick.PlayerID,
			DrafterSlot: pick.Slot,
			ADPDelta:    delta,
			CreatedAt:   now,
		})
	}

	for _, owner := range queueOwners {
		events = append(events, models.NotableEvent{
			ID:          uuid.New(),
			SessionID:   pick.SessionID,
			Type:        models.NotableEventQueueAlert,
			PickNumber:  pick.PickNumber,
			PlayerID:    pick.PlayerID,
			DrafterSlot: pick.Slot,
			QueueOwner:  &owner,
			CreatedAt:   now,
		})
	}

	return events
}
