package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/draft/engine"
	"github.com/draftday/warroom/go/internal/draft/events"
	"github.com/draftday/warroom/go/internal/draft/gateway"
	"github.com/draftday/warroom/go/internal/draft/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	cat, err := catalog.LoadFile(config.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.CatalogPath).Msg("failed to load player catalog")
	}
	log.Info().Int("players", cat.Len()).Str("path", config.CatalogPath).Msg("player catalog loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionStore, cleanup := setupStore()
	defer cleanup()

	// Gateway first so the engine's sink can feed its WebSocket fanout.
	gatewayService, err := gateway.NewService(gateway.DefaultConfig(), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway service")
	}

	sink := setupSink(ctx, gatewayService)

	registry := engine.NewRegistry(config.Engine, engine.Deps{
		Catalog: cat,
		Clock:   clockwork.NewRealClock(),
		Sink:    sink,
		Store:   sessionStore,
		Logger:  log.Logger,
	})
	gatewayService.BindRegistry(registry)

	mux := http.NewServeMux()
	gatewayService.RegisterRoutes(mux)
	setupHealthCheck(mux)

	server := setupServer(mux)

	go func() {
		if err := gatewayService.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	cancel()
	registry.Shutdown()
	log.Info().Msg("shutdown complete")
}

// setupStore picks the session store: Postgres when STORE=postgres,
// otherwise in-memory.
func setupStore() (store.Store, func()) {
	if getEnv("STORE", "memory") != "postgres" {
		log.Info().Msg("using in-memory session store")
		return store.NewMemoryStore(), func() {}
	}

	db, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	return store.NewPostgresStore(db), func() { db.Close() }
}

// setupSink builds the engine's event sink: the gateway fanout always,
// teed with JetStream when NATS_URL is set.
func setupSink(ctx context.Context, gw *gateway.Service) events.Sink {
	broadcast := gw.Sink()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		log.Info().Msg("NATS_URL not set, events stay in-process")
		return broadcast
	}

	natsSink, err := events.NewNATSSink(ctx, natsURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", natsURL).Msg("failed to connect to NATS")
	}
	go func() {
		<-ctx.Done()
		natsSink.Close()
	}()
	log.Info().Str("url", natsURL).Msg("publishing events to JetStream")
	return gateway.NewTeeSink(broadcast, natsSink)
}
