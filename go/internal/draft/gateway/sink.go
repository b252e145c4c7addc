package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/google/uuid"
)

// BroadcastSink feeds engine events straight into the WebSocket fanout.
// Used when the engine and the gateway share a process; separate processes
// go through JetStream instead.
type BroadcastSink struct {
	cm *ConnectionManager
}

// NewBroadcastSink wraps a connection manager as an event sink.
func NewBroadcastSink(cm *ConnectionManager) *BroadcastSink {
	return &BroadcastSink{cm: cm}
}

func (s *BroadcastSink) Publish(_ context.Context, env events.Envelope) error {
	sessionID, err := uuid.Parse(env.SessionID)
	if err != nil {
		return fmt.Errorf("parse session ID: %w", err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	s.cm.BroadcastToSession(sessionID, data)
	return nil
}

// TeeSink publishes every event to each wrapped sink, in order. Publish
// errors are collected so one failing transport does not silence the rest.
type TeeSink struct {
	sinks []events.Sink
}

// NewTeeSink fans events out to the given sinks.
func NewTeeSink(sinks ...events.Sink) *TeeSink {
	return &TeeSink{sinks: sinks}
}

func (s *TeeSink) Publish(ctx context.Context, env events.Envelope) error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, env); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
