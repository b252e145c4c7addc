package models

// Roster tracks what one drafter slot has accumulated: counts per position
// and the ordered picks belonging to that slot. It is updated by exactly one
// event, a Pick being appended for the slot.
type Roster struct {
	Slot           int              `json:"slot"`
	PositionCounts map[Position]int `json:"position_counts"`
	Picks          []Pick           `json:"picks"`
}

// NewRoster returns an empty roster for a slot.
func NewRoster(slot int) *Roster {
	return &Roster{
		Slot:           slot,
		PositionCounts: make(map[Position]int),
	}
}

// Add records a pick of a player at the given position.
func (r *Roster) Add(pick Pick, pos Position) {
	r.Picks = append(r.Picks, pick)
	r.PositionCounts[pos]++
}

// Count returns how many players the roster holds at pos.
func (r *Roster) Count(pos Position) int {
	return r.PositionCounts[pos]
}

// Clone returns a deep copy, used when projecting snapshots so observers
// never share mutable state with the engine.
func (r *Roster) Clone() *Roster {
	counts := make(map[Position]int, len(r.PositionCounts))
	for pos, n := range r.PositionCounts {
		counts[pos] = n
	}
	picks := make([]Pick, len(r.Picks))
	copy(picks, r.Picks)
	return &Roster{Slot: r.Slot, PositionCounts: counts, Picks: picks}
}
