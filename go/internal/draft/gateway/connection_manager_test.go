package gateway

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConnection(cm *ConnectionManager, sessionID uuid.UUID, userID string) *Connection {
	return &Connection{
		ID:          uuid.New().String(),
		UserID:      userID,
		SessionID:   sessionID,
		Send:        make(chan []byte, 4),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}
}

func TestBroadcastDeliversToSessionConnections(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	sessionID := uuid.New()
	a := testConnection(cm, sessionID, "user-a")
	b := testConnection(cm, sessionID, "user-b")
	other := testConnection(cm, uuid.New(), "user-c")
	cm.registerConnection(a)
	cm.registerConnection(b)
	cm.registerConnection(other)

	cm.handleBroadcast(broadcastMessage{SessionID: sessionID, Data: []byte("feed")})

	assert.Equal(t, []byte("feed"), <-a.Send)
	assert.Equal(t, []byte("feed"), <-b.Send)
	assert.Empty(t, other.Send)

	cm.handleBroadcast(broadcastMessage{SessionID: sessionID, Data: []byte("dm"), UserID: "user-b"})
	assert.Empty(t, a.Send)
	assert.Equal(t, []byte("dm"), <-b.Send)
}

func TestUnregisterLeavesSendOpenForInFlightBroadcasts(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	sessionID := uuid.New()
	conn := testConnection(cm, sessionID, "user-a")
	cm.registerConnection(conn)

	// A broadcast loop snapshots its targets under RLock and sends after
	// releasing it, so a disconnect can land in between. The late send must
	// not hit a closed channel.
	cm.unregisterConnection(conn)
	require.NotPanics(t, func() { conn.Send <- []byte("late") })

	// Unregistering twice is a no-op.
	cm.unregisterConnection(conn)

	stats := cm.Stats()
	assert.Zero(t, stats.TotalConnections)
	assert.Zero(t, stats.ActiveSessions)
}
