package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestEnqueuePreservesOrderAndSkipsDuplicates(t *testing.T) {
	players := ids(3)
	q := &Queue{}

	for _, id := range players {
		q.Enqueue(id)
	}
	q.Enqueue(players[1]) // duplicate, no-op

	assert.Equal(t, players, q.Players())
	assert.Equal(t, 3, q.Len())
}

func TestRemoveByIndex(t *testing.T) {
	players := ids(3)
	q := &Queue{}
	for _, id := range players {
		q.Enqueue(id)
	}

	require.NoError(t, q.Remove(1))
	assert.Equal(t, []uuid.UUID{players[0], players[2]}, q.Players())

	assert.ErrorIs(t, q.Remove(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, q.Remove(-1), ErrIndexOutOfRange)
}

func TestReorderAcceptsPermutation(t *testing.T) {
	players := ids(3)
	q := &Queue{}
	for _, id := range players {
		q.Enqueue(id)
	}

	newOrder := []uuid.UUID{players[2], players[0], players[1]}
	require.NoError(t, q.Reorder(newOrder))
	assert.Equal(t, newOrder, q.Players())
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	players := ids(3)
	q := &Queue{}
	for _, id := range players {
		q.Enqueue(id)
	}
	before := q.Players()

	// Wrong length.
	assert.ErrorIs(t, q.Reorder(players[:2]), ErrNotPermutation)

	// Right length, foreign entry.
	bad := []uuid.UUID{players[0], players[1], uuid.New()}
	assert.ErrorIs(t, q.Reorder(bad), ErrNotPermutation)

	// Right length, duplicated entry.
	dup := []uuid.UUID{players[0], players[1], players[1]}
	assert.ErrorIs(t, q.Reorder(dup), ErrNotPermutation)

	// Rejections leave the queue untouched.
	assert.Equal(t, before, q.Players())
}

func TestDrainDraftedRemovesFromEveryQueue(t *testing.T) {
	target := uuid.New()
	ownerA, ownerB, ownerC := uuid.New(), uuid.New(), uuid.New()

	s := NewSet()
	s.Get(ownerA).Enqueue(target)
	s.Get(ownerA).Enqueue(uuid.New())
	s.Get(ownerB).Enqueue(target)
	s.Get(ownerC).Enqueue(uuid.New())

	owners := s.DrainDrafted(target)
	assert.ElementsMatch(t, []uuid.UUID{ownerA, ownerB}, owners)

	assert.False(t, s.Get(ownerA).Contains(target))
	assert.False(t, s.Get(ownerB).Contains(target))
	assert.Equal(t, 1, s.Get(ownerA).Len())
	assert.Equal(t, 0, s.Get(ownerB).Len())
	assert.Equal(t, 1, s.Get(ownerC).Len())

	// Draining a player nobody queued reports no owners.
	assert.Empty(t, s.DrainDrafted(uuid.New()))
}

func TestSetAllAndRestoreRoundTrip(t *testing.T) {
	owner := uuid.New()
	players := ids(2)

	s := NewSet()
	s.Get(owner).Enqueue(players[0])
	s.Get(owner).Enqueue(players[1])
	s.Get(uuid.New()) // empty queue, excluded from All

	snapshot := s.All()
	require.Len(t, snapshot, 1)
	assert.Equal(t, players, snapshot[owner])

	restored := NewSet()
	restored.Restore(snapshot)
	assert.Equal(t, players, restored.Get(owner).Players())
}
