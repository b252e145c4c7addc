package needs

import (
	"testing"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateUrgencyBands(t *testing.T) {
	e := NewEvaluator(DefaultConfig())

	empty := map[models.Position]int{}

	tests := []struct {
		name  string
		round int
		want  Urgency
	}{
		{"early round unmet is neutral", 1, UrgencyNeutral},
		{"mid round unmet is warning", 8, UrgencyWarning},
		{"late round unmet is critical", 12, UrgencyCritical},
		{"past late threshold stays critical", 17, UrgencyCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, need := range e.Evaluate(empty, tt.round) {
				assert.Equal(t, tt.want, need.Urgency, "position %s", need.Position)
			}
		})
	}
}

func TestEvaluateMetMinimumIsGoodRegardlessOfRound(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	counts := map[models.Position]int{
		models.PositionQB: 1,
		models.PositionRB: 3,
		models.PositionWR: 2,
		models.PositionTE: 1,
	}

	for _, need := range e.Evaluate(counts, 15) {
		assert.Equal(t, UrgencyGood, need.Urgency, "position %s", need.Position)
	}
}

func TestEvaluateReportsCountsAndMinimums(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	counts := map[models.Position]int{models.PositionRB: 1}

	byPos := map[models.Position]PositionNeed{}
	for _, need := range e.Evaluate(counts, 3) {
		byPos[need.Position] = need
	}

	rb := byPos[models.PositionRB]
	assert.Equal(t, 1, rb.Current)
	assert.Equal(t, 2, rb.Minimum)
	assert.Equal(t, 4, rb.Recommended)
	assert.Equal(t, UrgencyNeutral, rb.Urgency)
}

func TestMostUrgentPrefersLargestShortfall(t *testing.T) {
	e := NewEvaluator(DefaultConfig())

	// RB needs 2 more, everything else needs at most 1.
	counts := map[models.Position]int{
		models.PositionQB: 0,
		models.PositionRB: 0,
		models.PositionWR: 1,
		models.PositionTE: 1,
	}

	pos, ok := e.MostUrgent(counts, 5)
	require.True(t, ok)
	assert.Equal(t, models.PositionRB, pos)
}

func TestMostUrgentFalseWhenRosterComplete(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	counts := map[models.Position]int{
		models.PositionQB: 2,
		models.PositionRB: 4,
		models.PositionWR: 4,
		models.PositionTE: 2,
	}

	_, ok := e.MostUrgent(counts, 14)
	assert.False(t, ok)
}

func TestMostUrgentTiebreakUsesPositionOrder(t *testing.T) {
	e := NewEvaluator(DefaultConfig())

	// QB and TE both short by exactly 1; QB comes first in position order.
	counts := map[models.Position]int{
		models.PositionQB: 0,
		models.PositionRB: 2,
		models.PositionWR: 2,
		models.PositionTE: 0,
	}

	pos, ok := e.MostUrgent(counts, 10)
	require.True(t, ok)
	assert.Equal(t, models.PositionQB, pos)
}
