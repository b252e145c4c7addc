package notable

import (
	"testing"
	"time"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPick(pickNumber int) models.Pick {
	return models.Pick{
		ID:         uuid.New(),
		SessionID:  uuid.New(),
		PickNumber: pickNumber,
		Round:      1,
		Slot:       3,
		PlayerID:   uuid.New(),
		PickedAt:   time.Now(),
	}
}

func TestReachFiresWhenPickBeatsADPByMoreThanThreshold(t *testing.T) {
	d := NewDetector(Config{ReachThreshold: 12})
	now := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)

	pick := testPick(5)
	events := d.OnPick(pick, 40, nil, now)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, models.NotableEventReach, ev.Type)
	assert.Equal(t, pick.SessionID, ev.SessionID)
	assert.Equal(t, pick.PlayerID, ev.PlayerID)
	assert.Equal(t, 5, ev.PickNumber)
	assert.Equal(t, 3, ev.DrafterSlot)
	assert.InDelta(t, 35, ev.ADPDelta, 1e-9)
	assert.Equal(t, now, ev.CreatedAt)
}

func TestReachSilentInsideThreshold(t *testing.T) {
	d := NewDetector(Config{ReachThreshold: 12})

	// ADP 15 at pick 5 is a delta of 10, inside the threshold.
	events := d.OnPick(testPick(5), 15, nil, time.Now())
	assert.Empty(t, events)

	// Exactly at the threshold is not a reach.
	events = d.OnPick(testPick(5), 17, nil, time.Now())
	assert.Empty(t, events)

	// A player falling past ADP is never a reach.
	events = d.OnPick(testPick(30), 10, nil, time.Now())
	assert.Empty(t, events)
}

func TestQueueAlertPerAffectedOwner(t *testing.T) {
	d := NewDetector(DefaultConfig())
	ownerA, ownerB := uuid.New(), uuid.New()

	pick := testPick(20)
	events := d.OnPick(pick, 21, []uuid.UUID{ownerA, ownerB}, time.Now())

	require.Len(t, events, 2)
	var owners []uuid.UUID
	for _, ev := range events {
		assert.Equal(t, models.NotableEventQueueAlert, ev.Type)
		assert.Equal(t, pick.PlayerID, ev.PlayerID)
		require.NotNil(t, ev.QueueOwner)
		owners = append(owners, *ev.QueueOwner)
	}
	assert.ElementsMatch(t, []uuid.UUID{ownerA, ownerB}, owners)
}

func TestReachAndQueueAlertAreIndependent(t *testing.T) {
	d := NewDetector(Config{ReachThreshold: 10})
	owner := uuid.New()

	events := d.OnPick(testPick(2), 30, []uuid.UUID{owner}, time.Now())

	require.Len(t, events, 2)
	assert.Equal(t, models.NotableEventReach, events[0].Type)
	assert.Equal(t, models.NotableEventQueueAlert, events[1].Type)
}
