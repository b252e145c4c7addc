// Package catalog holds the immutable player pool a draft session is
// created with: id to name, position, NFL team, and ADP. The available pool
// is always derived from the catalog minus the pick history, never stored.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
)

// Catalog is an immutable player lookup. Construct with New or LoadFile and
// do not mutate the players afterwards.
type Catalog struct {
	byID  map[uuid.UUID]models.Player
	order []uuid.UUID // insertion order, for deterministic iteration
}

// New builds a catalog from players. Duplicate IDs and unknown positions are
// rejected so every later lookup can be unchecked.
func New(players []models.Player) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[uuid.UUID]models.Player, len(players)),
		order: make([]uuid.UUID, 0, len(players)),
	}
	for _, p := range players {
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate player id %s", p.ID)
		}
		if !p.Position.Valid() {
			return nil, fmt.Errorf("player %s has unknown position %q", p.ID, p.Position)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// LoadFile reads a players JSON array from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return New(players)
}

// Get returns the player and whether it exists.
func (c *Catalog) Get(id uuid.UUID) (models.Player, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Has reports whether id is a catalog player.
func (c *Catalog) Has(id uuid.UUID) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Players returns all players in insertion order.
func (c *Catalog) Players() []models.Player {
	out := make([]models.Player, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Available returns every catalog player not in drafted, in insertion order.
// This is the AvailablePool derivation: catalog minus pick history.
func (c *Catalog) Available(drafted map[uuid.UUID]bool) []models.Player {
	out := make([]models.Player, 0, len(c.order)-len(drafted))
	for _, id := range c.order {
		if !drafted[id] {
			out = append(out, c.byID[id])
		}
	}
	return out
}
