package engine

import (
	"context"
	"testing"
	"time"

	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/draftday/warroom/go/internal/draft/store"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, cat *catalog.Catalog, st store.Store) (*Registry, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	reg := NewRegistry(DefaultConfig(), Deps{
		Catalog: cat,
		Clock:   fc,
		Sink:    &events.CaptureSink{},
		Store:   st,
	})
	t.Cleanup(reg.Shutdown)
	return reg, fc
}

func testCatalog(t *testing.T, players int) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(poolOf(players))
	require.NoError(t, err)
	return cat
}

func TestRegistryCreateAndGet(t *testing.T) {
	reg, _ := newTestRegistry(t, testCatalog(t, 8), store.NewMemoryStore())
	ctx := context.Background()

	session, err := reg.CreateSession(ctx, CreateSessionRequest{
		DraftOrder:  []uuid.UUID{uuid.New(), uuid.New()},
		TotalRounds: 2,
	})
	require.NoError(t, err)

	got, err := reg.Get(ctx, session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestRegistryGetUnknownSession(t *testing.T) {
	reg, _ := newTestRegistry(t, testCatalog(t, 8), store.NewMemoryStore())

	_, err := reg.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryRecoversFromStore(t *testing.T) {
	mem := store.NewMemoryStore()
	cat := testCatalog(t, 8)
	ctx := context.Background()

	reg, _ := newTestRegistry(t, cat, mem)
	session, err := reg.CreateSession(ctx, CreateSessionRequest{
		DraftOrder:  []uuid.UUID{uuid.New(), uuid.New()},
		TotalRounds: 2,
	})
	require.NoError(t, err)
	require.NoError(t, session.StartTimer(ctx))

	snap := session.Snapshot()
	require.NoError(t, session.CommitManualPick(ctx, 1, snap.AvailablePool[0].ID))

	// A fresh registry over the same store sees the session with its picks.
	fresh, _ := newTestRegistry(t, cat, mem)
	recovered, err := fresh.Get(ctx, session.ID())
	require.NoError(t, err)

	got := recovered.Snapshot()
	assert.Equal(t, 2, got.CurrentPick)
	assert.Len(t, got.Picks, 1)
}

func TestRegistryRunnerDrivesRecoveredSession(t *testing.T) {
	reg, fc := newTestRegistry(t, testCatalog(t, 8), store.NewMemoryStore())
	ctx := context.Background()

	session, err := reg.CreateSession(ctx, CreateSessionRequest{
		DraftOrder:  []uuid.UUID{uuid.New(), uuid.New()},
		TotalRounds: 1,
	})
	require.NoError(t, err)
	require.NoError(t, session.StartTimer(ctx))

	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	fc.Advance(91 * time.Second)

	require.Eventually(t, func() bool {
		return session.Snapshot().CurrentPick == 2
	}, 2*time.Second, 5*time.Millisecond, "registry runner fires the autopick")
}
