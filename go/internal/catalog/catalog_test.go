package catalog

import (
	"testing"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayers() []models.Player {
	return []models.Player{
		{ID: uuid.New(), FullName: "Alpha Back", Position: models.PositionRB, NFLTeam: "DAL", ADP: 3.2},
		{ID: uuid.New(), FullName: "Bravo Wideout", Position: models.PositionWR, NFLTeam: "CIN", ADP: 1.5},
		{ID: uuid.New(), FullName: "Charlie Quarterback", Position: models.PositionQB, NFLTeam: "BUF", ADP: 18.7},
		{ID: uuid.New(), FullName: "Delta End", Position: models.PositionTE, NFLTeam: "KC", ADP: 9.0},
	}
}

func TestNewRejectsDuplicatesAndBadPositions(t *testing.T) {
	players := testPlayers()

	_, err := New(append(players, players[0]))
	assert.ErrorContains(t, err, "duplicate player id")

	bad := testPlayers()
	bad[0].Position = "K"
	_, err = New(bad)
	assert.ErrorContains(t, err, "unknown position")
}

func TestAvailableExcludesDrafted(t *testing.T) {
	players := testPlayers()
	c, err := New(players)
	require.NoError(t, err)

	drafted := map[uuid.UUID]bool{players[1].ID: true}
	available := c.Available(drafted)

	require.Len(t, available, 3)
	for _, p := range available {
		assert.NotEqual(t, players[1].ID, p.ID)
		assert.True(t, c.Has(p.ID))
	}
}

func TestSortPlayersDefaultsToADPAscending(t *testing.T) {
	players := testPlayers()
	SortPlayers(players)

	require.Len(t, players, 4)
	assert.Equal(t, "Bravo Wideout", players[0].FullName)
	assert.Equal(t, "Alpha Back", players[1].FullName)
	assert.Equal(t, "Delta End", players[2].FullName)
	assert.Equal(t, "Charlie Quarterback", players[3].FullName)
}

func TestSortPlayersExplicitDescending(t *testing.T) {
	players := testPlayers()
	SortPlayers(players, Comparator{Key: SortByADP, Direction: Descending})

	assert.Equal(t, "Charlie Quarterback", players[0].FullName)
	assert.Equal(t, "Bravo Wideout", players[3].FullName)
}

func TestSortPlayersChainBreaksTies(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	players := []models.Player{
		{ID: a, FullName: "Zeta Runner", Position: models.PositionRB, ADP: 10},
		{ID: b, FullName: "Alpha Runner", Position: models.PositionRB, ADP: 10},
	}

	SortPlayers(players, Comparator{Key: SortByADP}, Comparator{Key: SortByName})
	assert.Equal(t, b, players[0].ID)

	// Without the secondary term the stable sort keeps input order.
	players[0], players[1] = players[1], players[0]
	SortPlayers(players, Comparator{Key: SortByADP})
	assert.Equal(t, "Zeta Runner", players[0].FullName)
}

func TestSortPlayersPositionThenADP(t *testing.T) {
	players := testPlayers()
	SortPlayers(players, Comparator{Key: SortByPosition}, Comparator{Key: SortByADP})

	assert.Equal(t, models.PositionQB, players[0].Position)
	assert.Equal(t, models.PositionRB, players[1].Position)
	assert.Equal(t, models.PositionTE, players[2].Position)
	assert.Equal(t, models.PositionWR, players[3].Position)
}
