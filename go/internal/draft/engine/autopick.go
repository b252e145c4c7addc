package engine

import (
	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/draft/needs"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Selection describes the on-the-clock situation an autopick strategy
// chooses from. Queued holds the drafter's queue in priority order;
// Available is the remaining pool.
type Selection struct {
	Slot           int
	Round          int
	PositionCounts map[models.Position]int
	Queued         []uuid.UUID
	Available      []models.Player
}

// AutoPickStrategy selects the player to draft when a pick times out.
type AutoPickStrategy interface {
	SelectPlayer(sel Selection) (uuid.UUID, error)
}

// QueueNeedsStrategy implements the default autopick policy: the first
// queued player still in the pool; failing that, the best available player
// at the drafter's most urgent unmet position, tie-broken by lowest ADP;
// failing that, the best available player overall by ADP. It only errors
// when the pool itself is empty.
type QueueNeedsStrategy struct {
	needs *needs.Evaluator
}

// NewQueueNeedsStrategy builds the default strategy around a needs
// evaluator.
func NewQueueNeedsStrategy(evaluator *needs.Evaluator) *QueueNeedsStrategy {
	return &QueueNeedsStrategy{needs: evaluator}
}

// SelectPlayer implements AutoPickStrategy.
func (s *QueueNeedsStrategy) SelectPlayer(sel Selection) (uuid.UUID, error) {
	if len(sel.Available) == 0 {
		return uuid.Nil, ErrPoolExhausted
	}

	available := make(map[uuid.UUID]bool, len(sel.Available))
	for _, p := range sel.Available {
		available[p.ID] = true
	}

	// First still-available queued player wins.
	for _, id := range sel.Queued {
		if available[id] {
			log.Debug().
				Int("slot", sel.Slot).
				Str("player_id", id.String()).
				Msg("autopick from queue")
			return id, nil
		}
	}

	// Queue empty or fully stale: fall back to the most urgent unmet
	// position, best ADP first.
	pool := make([]models.Player, len(sel.Available))
	copy(pool, sel.Available)
	catalog.SortPlayers(pool, catalog.Comparator{Key: catalog.SortByADP})

	if pos, ok := s.needs.MostUrgent(sel.PositionCounts, sel.Round); ok {
		for _, p := range pool {
			if p.Position == pos {
				log.Debug().
					Int("slot", sel.Slot).
					Str("player_id", p.ID.String()).
					Str("position", string(pos)).
					Msg("autopick by position need")
				return p.ID, nil
			}
		}
	}

	// Roster complete, or nobody left at the needed position: best ADP.
	return pool[0].ID, nil
}
