package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/events"
)

// OutboxRepository defines what the app layer needs from the outbox
// repository.
type OutboxRepository interface {
	InsertEvent(ctx context.Context, gameID uuid.UUID, eventType string, payload []byte) error
}

// App is the write side of the outbox: one typed insert per event the
// coordinator emits.
type App struct {
	repo OutboxRepository
}

func NewApp(repo OutboxRepository) *App {
	return &App{
		repo: repo,
	}
}

func (a *App) insert(ctx context.Context, gameID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return a.repo.InsertEvent(ctx, gameID, eventType, data)
}

func (a *App) InsertPlayerJoined(ctx context.Context, gameID uuid.UUID, payload events.PlayerJoinedPayload) error {
	return a.insert(ctx, gameID, events.TypePlayerJoined, payload)
}

func (a *App) InsertGameStarted(ctx context.Context, gameID uuid.UUID, payload events.GameStartedPayload) error {
	return a.insert(ctx, gameID, events.TypeGameStarted, payload)
}

func (a *App) InsertRoundStarted(ctx context.Context, gameID uuid.UUID, payload events.RoundStartedPayload) error {
	return a.insert(ctx, gameID, events.TypeRoundStarted, payload)
}

func (a *App) InsertAnswerSubmitted(ctx context.Context, gameID uuid.UUID, payload events.AnswerSubmittedPayload) error {
	return a.insert(ctx, gameID, events.TypeAnswerSubmitted, payload)
}

func (a *App) InsertVotingStarted(ctx context.Context, gameID uuid.UUID, payload events.VotingStartedPayload) error {
	return a.insert(ctx, gameID, events.TypeVotingStarted, payload)
}

func (a *App) InsertVoteCast(ctx context.Context, gameID uuid.UUID, payload events.VoteCastPayload) error {
	return a.insert(ctx, gameID, events.TypeVoteCast, payload)
}

func (a *App) InsertRoundScored(ctx context.Context, gameID uuid.UUID, payload events.RoundScoredPayload) error {
	return a.insert(ctx, gameID, events.TypeRoundScored, payload)
}

func (a *App) InsertGameCompleted(ctx context.Context, gameID uuid.UUID, payload events.GameCompletedPayload) error {
	return a.insert(ctx, gameID, events.TypeGameCompleted, payload)
}
