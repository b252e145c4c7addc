package store

import (
	"context"
	"testing"
	"time"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sessionID := uuid.New()
	owner := uuid.New()
	now := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)

	rec := &SessionRecord{
		Session: models.DraftSession{
			ID:     sessionID,
			Status: models.SessionStatusActive,
			Settings: models.SessionSettings{
				TotalRounds:    2,
				SecondsPerPick: 60,
				DraftOrder:     []uuid.UUID{owner, uuid.New()},
			},
			CurrentPick: 3,
			CreatedAt:   now,
		},
		Picks: []models.Pick{{
			ID:         uuid.New(),
			SessionID:  sessionID,
			PickNumber: 1,
			Round:      1,
			Slot:       1,
			PlayerID:   uuid.New(),
			PickedAt:   now,
		}},
		Queues: map[uuid.UUID][]uuid.UUID{owner: {uuid.New()}},
	}

	require.NoError(t, m.Save(ctx, rec))

	loaded, err := m.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, rec.Session, loaded.Session)
	assert.Equal(t, rec.Picks, loaded.Picks)
	assert.Equal(t, rec.Queues, loaded.Queues)
}

func TestMemoryStoreLoadUnknown(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSaveCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sessionID := uuid.New()
	rec := &SessionRecord{
		Session: models.DraftSession{
			ID:          sessionID,
			Status:      models.SessionStatusScheduled,
			CurrentPick: 1,
		},
	}
	require.NoError(t, m.Save(ctx, rec))

	// Mutating the saved record must not leak into the store.
	rec.Session.CurrentPick = 99

	loaded, err := m.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Session.CurrentPick)
}
