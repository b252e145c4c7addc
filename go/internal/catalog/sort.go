package catalog

import (
	"sort"
	"strings"

	"github.com/draftday/warroom/go/internal/models"
)

// SortKey enumerates the player list orderings clients may request.
type SortKey string

const (
	SortByADP      SortKey = "adp"
	SortByName     SortKey = "name"
	SortByPosition SortKey = "position"
)

// Direction is an explicit sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DefaultDirection returns the natural direction for a key: ADP low-first,
// names and positions alphabetical.
func (k SortKey) DefaultDirection() Direction {
	return Ascending
}

// Comparator is one sort term: a key plus direction. A zero Direction means
// the key's default.
type Comparator struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction,omitempty"`
}

func (c Comparator) less(a, b models.Player) (less, equal bool) {
	var cmp int
	switch c.Key {
	case SortByName:
		cmp = strings.Compare(a.FullName, b.FullName)
	case SortByPosition:
		cmp = strings.Compare(string(a.Position), string(b.Position))
	default: // SortByADP
		switch {
		case a.ADP < b.ADP:
			cmp = -1
		case a.ADP > b.ADP:
			cmp = 1
		}
	}

	dir := c.Direction
	if dir == "" {
		dir = c.Key.DefaultDirection()
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp < 0, cmp == 0
}

// SortPlayers stable-sorts players in place by the comparator chain:
// the first comparator is primary, later ones break ties. An empty chain
// defaults to ADP ascending.
func SortPlayers(players []models.Player, chain ...Comparator) {
	if len(chain) == 0 {
		chain = []Comparator{{Key: SortByADP}}
	}
	sort.SliceStable(players, func(i, j int) bool {
		for _, c := range chain {
			less, equal := c.less(players[i], players[j])
			if !equal {
				return less
			}
		}
		return false
	})
}
