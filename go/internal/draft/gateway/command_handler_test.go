package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/draft/engine"
	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/draftday/warroom/go/internal/draft/store"
	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	mux     *http.ServeMux
	users   []uuid.UUID
	players []models.Player
	clock   *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	positions := []models.Position{
		models.PositionRB, models.PositionWR, models.PositionQB, models.PositionTE,
	}
	players := make([]models.Player, 12)
	for i := range players {
		players[i] = models.Player{
			ID:       uuid.New(),
			FullName: fmt.Sprintf("Player %02d", i+1),
			Position: positions[i%len(positions)],
			ADP:      float64(i + 1),
		}
	}
	cat, err := catalog.New(players)
	require.NoError(t, err)

	fc := clockwork.NewFakeClock()
	registry := engine.NewRegistry(engine.DefaultConfig(), engine.Deps{
		Catalog: cat,
		Clock:   fc,
		Sink:    &events.CaptureSink{},
		Store:   store.NewMemoryStore(),
	})
	t.Cleanup(registry.Shutdown)

	mux := http.NewServeMux()
	NewCommandHandler(registry).RegisterRoutes(mux)
	NewStateHandler(registry).RegisterRoutes(mux)

	return &testEnv{
		mux:     mux,
		users:   []uuid.UUID{uuid.New(), uuid.New()},
		players: players,
		clock:   fc,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createSession(t *testing.T) uuid.UUID {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/sessions", createSessionRequest{
		DraftOrder:  e.users,
		TotalRounds: 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	return snap.SessionID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateStartAndPickFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id.String()+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/sessions/"+id.String()+"/picks", commitPickRequest{
		Slot:     1,
		PlayerID: env.players[0].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, 2, snap.CurrentPick)
	require.Len(t, snap.Picks, 1)
	assert.Equal(t, env.players[0].ID, snap.Picks[0].PlayerID)
}

func TestCreateSessionRejectsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/sessions", createSessionRequest{TotalRounds: 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	path := "/api/sessions/" + id.String()

	// Pick before the clock starts: the session is not active.
	rec := env.do(t, http.MethodPost, path+"/picks", commitPickRequest{Slot: 1, PlayerID: env.players[0].ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "session_not_active", decodeError(t, rec).Kind)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, path+"/start", nil).Code)

	// Wrong slot on the clock.
	rec = env.do(t, http.MethodPost, path+"/picks", commitPickRequest{Slot: 2, PlayerID: env.players[0].ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_turn", decodeError(t, rec).Kind)

	// Draft a player, then try to draft it again.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, path+"/picks", commitPickRequest{Slot: 1, PlayerID: env.players[0].ID}).Code)
	rec = env.do(t, http.MethodPost, path+"/picks", commitPickRequest{Slot: 2, PlayerID: env.players[0].ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "player_unavailable", decodeError(t, rec).Kind)

	// Queue commands for a user without a slot.
	rec = env.do(t, http.MethodPost, path+"/queue", enqueueRequest{UserID: uuid.New(), PlayerID: env.players[1].ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "unknown_user", decodeError(t, rec).Kind)

	// Reorder that is not a permutation.
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, path+"/queue", enqueueRequest{UserID: env.users[0], PlayerID: env.players[5].ID}).Code)
	rec = env.do(t, http.MethodPost, path+"/queue/reorder", reorderQueueRequest{UserID: env.users[0], Order: []uuid.UUID{uuid.New()}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "queue_reorder_invalid", decodeError(t, rec).Kind)

	// Remove with a bad index.
	rec = env.do(t, http.MethodPost, path+"/queue/remove", removeFromQueueRequest{UserID: env.users[0], Index: 7})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "queue_index_out_of_range", decodeError(t, rec).Kind)
}

func TestStatusAndKindForTurnErrors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusForError(engine.ErrStaleTurn))
	assert.Equal(t, "stale_turn", kindForError(engine.ErrStaleTurn))
	assert.Equal(t, http.StatusConflict, statusForError(engine.ErrInvalidTurn))
	assert.Equal(t, http.StatusInternalServerError, statusForError(fmt.Errorf("boom")))
	assert.Equal(t, "", kindForError(fmt.Errorf("boom")))
}

func TestUnknownSessionIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+uuid.New().String()+"/start", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", decodeError(t, rec).Kind)

	rec = env.do(t, http.MethodPost, "/api/sessions/not-a-uuid/start", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStateEndpoints(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	rec := env.do(t, http.MethodGet, "/api/sessions/"+id.String()+"/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, id, snap.SessionID)
	assert.Equal(t, models.SessionStatusScheduled, snap.Status)
	assert.NotEmpty(t, snap.AvailablePool)

	rec = env.do(t, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []SessionSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, id.String(), summaries[0].SessionID)
}
