package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/draftday/warroom/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// PostgresStore persists session records in a single draft_sessions row per
// session, with the pick log, queues, and notable events as JSONB columns.
//
// Expected schema:
//
//	CREATE TABLE draft_sessions (
//	    id             UUID PRIMARY KEY,
//	    status         TEXT NOT NULL,
//	    settings       JSONB NOT NULL,
//	    current_pick   INT NOT NULL,
//	    timer_deadline TIMESTAMPTZ,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    started_at     TIMESTAMPTZ,
//	    completed_at   TIMESTAMPTZ,
//	    picks          JSONB,
//	    queues         JSONB,
//	    notable_events JSONB,
//	    paused_remaining_ms BIGINT NOT NULL DEFAULT 0,
//	    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load implements Store.
func (p *PostgresStore) Load(ctx context.Context, sessionID uuid.UUID) (*SessionRecord, error) {
	const q = `
		SELECT status, settings, current_pick, timer_deadline,
		       created_at, started_at, completed_at,
		       picks, queues, notable_events, paused_remaining_ms
		FROM draft_sessions WHERE id = $1`

	var (
		rec             SessionRecord
		settings        []byte
		timerDeadline   sql.NullTime
		startedAt       sql.NullTime
		completedAt     sql.NullTime
		picks           pqtype.NullRawMessage
		queues          pqtype.NullRawMessage
		notables        pqtype.NullRawMessage
		pausedRemaining int64
	)

	rec.Session.ID = sessionID
	err := p.db.QueryRowContext(ctx, q, sessionID).Scan(
		&rec.Session.Status, &settings, &rec.Session.CurrentPick, &timerDeadline,
		&rec.Session.CreatedAt, &startedAt, &completedAt,
		&picks, &queues, &notables, &pausedRemaining,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	if err := json.Unmarshal(settings, &rec.Session.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	rec.PausedRemaining = time.Duration(pausedRemaining) * time.Millisecond
	rec.Session.TimerDeadline = nullTimePtr(timerDeadline)
	rec.Session.StartedAt = nullTimePtr(startedAt)
	rec.Session.CompletedAt = nullTimePtr(completedAt)

	if picks.Valid {
		if err := json.Unmarshal(picks.RawMessage, &rec.Picks); err != nil {
			return nil, fmt.Errorf("decode picks: %w", err)
		}
	}
	if queues.Valid {
		if err := json.Unmarshal(queues.RawMessage, &rec.Queues); err != nil {
			return nil, fmt.Errorf("decode queues: %w", err)
		}
	}
	if notables.Valid {
		if err := json.Unmarshal(notables.RawMessage, &rec.NotableEvents); err != nil {
			return nil, fmt.Errorf("decode notable events: %w", err)
		}
	}

	return &rec, nil
}

// Save implements Store with an upsert inside a transaction.
func (p *PostgresStore) Save(ctx context.Context, rec *SessionRecord) error {
	settings, err := json.Marshal(rec.Session.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	picks, err := rawMessage(rec.Picks)
	if err != nil {
		return fmt.Errorf("encode picks: %w", err)
	}
	queues, err := rawMessage(rec.Queues)
	if err != nil {
		return fmt.Errorf("encode queues: %w", err)
	}
	notables, err := rawMessage(rec.NotableEvents)
	if err != nil {
		return fmt.Errorf("encode notable events: %w", err)
	}

	const q = `
		INSERT INTO draft_sessions
			(id, status, settings, current_pick, timer_deadline,
			 created_at, started_at, completed_at,
			 picks, queues, notable_events, paused_remaining_ms, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			settings = EXCLUDED.settings,
			current_pick = EXCLUDED.current_pick,
			timer_deadline = EXCLUDED.timer_deadline,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at,
			picks = EXCLUDED.picks,
			queues = EXCLUDED.queues,
			notable_events = EXCLUDED.notable_events,
			paused_remaining_ms = EXCLUDED.paused_remaining_ms,
			updated_at = now()`

	return sqlutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			rec.Session.ID, rec.Session.Status, settings, rec.Session.CurrentPick,
			ptrNullTime(rec.Session.TimerDeadline),
			rec.Session.CreatedAt,
			ptrNullTime(rec.Session.StartedAt),
			ptrNullTime(rec.Session.CompletedAt),
			picks, queues, notables, rec.PausedRemaining.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("upsert session %s: %w", rec.Session.ID, err)
		}
		return nil
	})
}

func rawMessage(v any) (pqtype.NullRawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}, err
	}
	return pqtype.NullRawMessage{RawMessage: data, Valid: true}, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func ptrNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
