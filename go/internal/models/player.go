package models

import (
	"github.com/google/uuid"
)

// Position is a fantasy roster position code.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// AllPositions lists every position the engine tracks, in display order.
var AllPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// Valid reports whether p is a known position code.
func (p Position) Valid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

// Player represents one entry in the immutable player catalog supplied at
// session creation.
type Player struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Position Position  `json:"position"`
	NFLTeam  string    `json:"nfl_team"`
	ADP      float64   `json:"adp"` // average draft position, pick-number units
}
