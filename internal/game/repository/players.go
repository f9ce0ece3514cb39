package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/models"
)

type CreatePlayerParams struct {
	ID     uuid.UUID
	GameID uuid.UUID
	Name   string
}

func (r *Repository) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*models.Player, error) {
	player, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:     params.ID,
		GameID: params.GameID,
		Name:   params.Name,
	})
	if err != nil {
		return nil, mapErr("create player", err)
	}
	return dbPlayerToModel(player), nil
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, mapErr("get player", err)
	}
	return dbPlayerToModel(player), nil
}

func (r *Repository) ListPlayers(ctx context.Context, gameID uuid.UUID) ([]models.Player, error) {
	rows, err := r.queries.ListPlayersByGame(ctx, gameID)
	if err != nil {
		return nil, mapErr("list players", err)
	}
	players := make([]models.Player, len(rows))
	for i, row := range rows {
		players[i] = *dbPlayerToModel(row)
	}
	return players, nil
}

// AddToPlayerScore applies a scored-round point delta. Deltas are never
// negative, so scores stay monotonically non-decreasing.
func (r *Repository) AddToPlayerScore(ctx context.Context, playerID uuid.UUID, delta int) error {
	err := r.queries.AddToPlayerScore(ctx, db.AddToPlayerScoreParams{
		ID:    playerID,
		Delta: int32(delta),
	})
	if err != nil {
		return mapErr("add to player score", err)
	}
	return nil
}

func dbPlayerToModel(player db.Player) *models.Player {
	return &models.Player{
		ID:        player.ID,
		GameID:    player.GameID,
		Name:      player.Name,
		Score:     int(player.Score),
		CreatedAt: player.CreatedAt,
	}
}
