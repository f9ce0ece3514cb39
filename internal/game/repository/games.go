package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/models"
)

type CreateGameParams struct {
	ID          uuid.UUID
	GameCode    string
	TargetScore int
	MaxRounds   int
}

func (r *Repository) CreateGame(ctx context.Context, params CreateGameParams) (*models.Game, error) {
	game, err := r.queries.CreateGame(ctx, db.CreateGameParams{
		ID:          params.ID,
		GameCode:    params.GameCode,
		TargetScore: int32(params.TargetScore),
		MaxRounds:   int32(params.MaxRounds),
	})
	if err != nil {
		return nil, mapErr("create game", err)
	}
	return dbGameToModel(game), nil
}

func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := r.queries.GetGame(ctx, id)
	if err != nil {
		return nil, mapErr("get game", err)
	}
	return dbGameToModel(game), nil
}

func (r *Repository) GetGameByCode(ctx context.Context, code string) (*models.Game, error) {
	game, err := r.queries.GetGameByCode(ctx, code)
	if err != nil {
		return nil, mapErr("get game by code", err)
	}
	return dbGameToModel(game), nil
}

func (r *Repository) SetGameHost(ctx context.Context, gameID, playerID uuid.UUID) error {
	err := r.queries.SetGameHost(ctx, db.SetGameHostParams{
		ID:           gameID,
		HostPlayerID: uuid.NullUUID{UUID: playerID, Valid: true},
	})
	if err != nil {
		return mapErr("set game host", err)
	}
	return nil
}

// UpdateGameStatusIf performs the guarded transition from -> to and
// reports whether this caller won it. False with a nil error means a
// concurrent actor already advanced the status.
func (r *Repository) UpdateGameStatusIf(ctx context.Context, id uuid.UUID, from, to models.GameStatus) (bool, error) {
	rows, err := r.queries.UpdateGameStatusIf(ctx, db.UpdateGameStatusIfParams{
		ID:         id,
		FromStatus: db.GameStatus(from),
		ToStatus:   db.GameStatus(to),
	})
	if err != nil {
		return false, mapErr("update game status", err)
	}
	return rows > 0, nil
}

// CompleteGame moves any non-completed game to completed, recording why.
// Idempotent: a second call reports false.
func (r *Repository) CompleteGame(ctx context.Context, id uuid.UUID, reason models.EndReason) (bool, error) {
	rows, err := r.queries.CompleteGame(ctx, db.CompleteGameParams{
		ID:        id,
		EndReason: db.NullEndReason{EndReason: db.EndReason(reason), Valid: true},
	})
	if err != nil {
		return false, mapErr("complete game", err)
	}
	return rows > 0, nil
}

func dbGameToModel(game db.Game) *models.Game {
	m := &models.Game{
		ID:          game.ID,
		GameCode:    game.GameCode,
		Status:      models.GameStatus(game.Status),
		TargetScore: int(game.TargetScore),
		MaxRounds:   int(game.MaxRounds),
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
	if game.HostPlayerID.Valid {
		host := game.HostPlayerID.UUID
		m.HostPlayerID = &host
	}
	if game.EndReason.Valid {
		reason := models.EndReason(game.EndReason.EndReason)
		m.EndReason = &reason
	}
	return m
}
