package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/draftday/warroom/go/internal/draft/engine"
	"github.com/rs/zerolog/log"
)

// Service bundles the gateway's handlers: WebSocket feed fanout, REST
// commands, snapshot reads, and the optional JetStream relay.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	commandHandler    *CommandHandler
	stateHandler      *StateHandler
	eventConsumer     *EventConsumer
}

// Config holds gateway configuration. When ConsumeJetStream is false the
// gateway expects to share a process with the engine and receive events
// through a BroadcastSink instead.
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
	ConsumeJetStream bool
}

// DefaultConfig returns the single-process defaults.
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService wires the gateway over the session registry. registry may be
// nil when the engine is constructed after the gateway (its sink comes from
// the gateway's fanout); call BindRegistry before RegisterRoutes in that
// case.
func NewService(config Config, registry *engine.Registry) (*Service, error) {
	cm := NewConnectionManager(config.ConnectionConfig)

	s := &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm),
	}
	if registry != nil {
		s.BindRegistry(registry)
	}

	if config.ConsumeJetStream {
		consumer, err := NewEventConsumer(cm, config.JetStreamConfig)
		if err != nil {
			return nil, fmt.Errorf("create event consumer: %w", err)
		}
		s.eventConsumer = consumer
	}

	return s, nil
}

// BindRegistry attaches the command and state handlers to a registry.
func (s *Service) BindRegistry(registry *engine.Registry) {
	s.commandHandler = NewCommandHandler(registry)
	s.stateHandler = NewStateHandler(registry)
}

// Sink returns an event sink that feeds the WebSocket fanout directly.
func (s *Service) Sink() *BroadcastSink {
	return NewBroadcastSink(s.connectionManager)
}

// Start runs the fanout loop (and JetStream consumer, if configured) until
// ctx is canceled.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting draft gateway service")

	go s.connectionManager.Start(ctx)

	if s.eventConsumer != nil {
		go func() {
			if err := s.eventConsumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}

	<-ctx.Done()
	return s.Stop()
}

// Stop releases the gateway's transport resources.
func (s *Service) Stop() error {
	if s.eventConsumer != nil {
		if err := s.eventConsumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	log.Info().Msg("draft gateway service stopped")
	return nil
}

// RegisterRoutes registers every gateway route on mux. The registry must be
// bound first.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	if s.commandHandler != nil {
		s.commandHandler.RegisterRoutes(mux)
		s.stateHandler.RegisterRoutes(mux)
	}
	log.Info().Msg("draft gateway routes registered")
}

// Stats reports connection counts for the info endpoint.
func (s *Service) Stats() ConnectionStats {
	return s.connectionManager.Stats()
}
