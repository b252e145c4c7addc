package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

const (
	// StreamName is the JetStream stream holding the draft event feed.
	StreamName = "DRAFT_EVENTS"
	// SubjectPrefix is the root of the feed subject space; full subjects are
	// draft.events.<session_id>.<event_type>.
	SubjectPrefix = "draft.events"

	natsMaxReconnects = -1
	natsReconnectWait = 2 * time.Second
)

// NATSSink publishes the event feed to NATS JetStream, one subject per
// session and event type so consumers can filter server-side.
type NATSSink struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewNATSSink connects to NATS and ensures the feed stream exists.
func NewNATSSink(ctx context.Context, url string) (*NATSSink, error) {
	opts := []nats.Option{
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectPrefix + ".>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour,
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return &NATSSink{nc: nc, js: js}, nil
}

// Publish implements Sink.
func (s *NATSSink) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	subject := fmt.Sprintf("%s.%s.%s", SubjectPrefix, env.SessionID, env.Type)
	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the underlying connection.
func (s *NATSSink) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
