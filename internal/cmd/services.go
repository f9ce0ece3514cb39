package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/stopgame/internal/config"
	"github.com/mcdev12/stopgame/internal/game/clock"
	"github.com/mcdev12/stopgame/internal/game/coordinator"
	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/game/gateway"
	"github.com/mcdev12/stopgame/internal/game/letters"
	"github.com/mcdev12/stopgame/internal/game/outbox"
	"github.com/mcdev12/stopgame/internal/game/repository"
	"github.com/mcdev12/stopgame/internal/game/service"
	"github.com/rs/zerolog/log"
)

// Services holds every wired component of the game server.
type Services struct {
	Game      *service.Service
	WebSocket *gateway.WebSocketHandler

	connectionManager *gateway.ConnectionManager
	outboxWorker      *outbox.Worker
	publisher         *outbox.JetStreamPublisher
	consumer          *gateway.EventConsumer
}

// setupServices wires the dependency chain:
// db -> repository -> outbox -> clock -> coordinator -> service,
// plus the outbox relay and the NATS-to-WebSocket gateway.
func setupServices(ctx context.Context, database *sql.DB, rules config.Rules) (*Services, error) {
	queries := db.New(database)
	repo := repository.NewRepository(queries)

	outboxRepo := outbox.NewRepository(queries)
	outboxApp := outbox.NewApp(outboxRepo)

	picker, err := letters.NewPicker(rules.ExcludedLetters)
	if err != nil {
		return nil, fmt.Errorf("invalid letter exclusions: %w", err)
	}

	roundClock := clock.New(clock.Config{
		Countdown: rules.CountdownDuration(),
		Grace:     rules.GraceDuration(),
		Voting:    rules.VotingDuration(),
	}, clockwork.NewRealClock())

	coord := coordinator.NewCoordinator(repo, outboxApp, roundClock, picker, rules)
	roundClock.Start(ctx, coord)

	gameService := service.NewService(coord)

	// Outbox relay: claim unsent events and publish to JetStream.
	jsConfig := outbox.DefaultJetStreamConfig()
	jsConfig.URL = config.NATSURL()
	publisher, err := outbox.NewJetStreamPublisher(jsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream publisher: %w", err)
	}
	worker := outbox.NewWorker(database, publisher, outbox.DefaultConfig())
	if err := worker.Start(ctx); err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to start outbox worker: %w", err)
	}

	// Gateway: JetStream consumer fanning out to WebSocket clients.
	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go connectionManager.Start(ctx)

	consumerConfig := gateway.DefaultJetStreamConsumerConfig()
	consumerConfig.URL = config.NATSURL()
	consumer, err := gateway.NewEventConsumer(connectionManager, consumerConfig)
	if err != nil {
		worker.Stop()
		publisher.Close()
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	}()

	return &Services{
		Game:              gameService,
		WebSocket:         gateway.NewWebSocketHandler(connectionManager),
		connectionManager: connectionManager,
		outboxWorker:      worker,
		publisher:         publisher,
		consumer:          consumer,
	}, nil
}

// Shutdown stops the background components in dependency order.
func (s *Services) Shutdown() {
	if err := s.outboxWorker.Stop(); err != nil {
		log.Error().Err(err).Msg("outbox worker shutdown failed")
	}
	s.publisher.Close()
	if err := s.consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("event consumer shutdown failed")
	}
}
