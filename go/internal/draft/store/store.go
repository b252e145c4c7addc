// Package store defines the persistence adapter for draft sessions. The
// engine is specified against this interface only; implementations decide
// the technology. Records are whole-session: the engine is the single
// writer, so a full save on each transition is simpler and safe.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/draftday/warroom/go/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Load for an unknown session ID.
var ErrNotFound = errors.New("store: session not found")

// SessionRecord is the durable form of one session: the aggregate state
// plus its append-only pick and notable-event logs and the user queues.
type SessionRecord struct {
	Session       models.DraftSession       `json:"session"`
	Picks         []models.Pick             `json:"picks"`
	Queues        map[uuid.UUID][]uuid.UUID `json:"queues"`
	NotableEvents []models.NotableEvent     `json:"notable_events"`

	// PausedRemaining is the countdown frozen by a pause, so a paused
	// session resumes with the same remainder after a restart.
	PausedRemaining time.Duration `json:"paused_remaining"`
}

// Store loads and saves session records across process restarts.
type Store interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*SessionRecord, error)
	Save(ctx context.Context, rec *SessionRecord) error
}
