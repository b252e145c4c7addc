package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Envelope is the wire form of one feed item.
type Envelope struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload, marshaling it to JSON.
func NewEnvelope(sessionID uuid.UUID, typ Type, at time.Time, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return Envelope{
		ID:        uuid.New().String(),
		SessionID: sessionID.String(),
		Type:      typ,
		Timestamp: at,
		Payload:   data,
	}, nil
}

// Sink receives the engine's event feed. Publish must not block the engine
// for long; slow transports should buffer internally.
type Sink interface {
	Publish(ctx context.Context, env Envelope) error
}

// LogSink writes every event to the log. Used in development and as a
// fallback when no broker is configured.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink that logs at debug level.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, env Envelope) error {
	s.logger.Debug().
		Str("event_id", env.ID).
		Str("session_id", env.SessionID).
		Str("event_type", string(env.Type)).
		RawJSON("payload", env.Payload).
		Msg("event published")
	return nil
}

// CaptureSink records events in memory for tests. Safe for concurrent use
// since timer goroutines publish alongside the test goroutine.
type CaptureSink struct {
	mu     sync.Mutex
	events []Envelope
}

func (s *CaptureSink) Publish(_ context.Context, env Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, env)
	return nil
}

// Events returns a copy of everything captured so far, in feed order.
func (s *CaptureSink) Events() []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Envelope(nil), s.events...)
}

// OfType returns the captured events matching typ, in feed order.
func (s *CaptureSink) OfType(typ Type) []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Envelope
	for _, env := range s.events {
		if env.Type == typ {
			out = append(out, env)
		}
	}
	return out
}
