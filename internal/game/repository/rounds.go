package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/models"
)

type CreateRoundParams struct {
	ID          uuid.UUID
	GameID      uuid.UUID
	RoundNumber int
	Letter      string
	Categories  []string
}

// CreateRound inserts a new active round. The unique (game_id,
// round_number) key makes duplicate next-round creation under racing
// finalizers fail as a PreconditionFailed rather than a second row.
func (r *Repository) CreateRound(ctx context.Context, params CreateRoundParams) (*models.Round, error) {
	categories, err := json.Marshal(params.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal categories: %w", err)
	}

	round, err := r.queries.CreateRound(ctx, db.CreateRoundParams{
		ID:          params.ID,
		GameID:      params.GameID,
		RoundNumber: int32(params.RoundNumber),
		Letter:      params.Letter,
		Categories:  categories,
	})
	if err != nil {
		return nil, mapErr("create round", err)
	}
	return dbRoundToModel(round)
}

func (r *Repository) GetRound(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	round, err := r.queries.GetRound(ctx, id)
	if err != nil {
		return nil, mapErr("get round", err)
	}
	return dbRoundToModel(round)
}

// GetOpenRound returns the game's single active-or-voting round, or
// NotFound when the game has none.
func (r *Repository) GetOpenRound(ctx context.Context, gameID uuid.UUID) (*models.Round, error) {
	round, err := r.queries.GetOpenRound(ctx, gameID)
	if err != nil {
		return nil, mapErr("get open round", err)
	}
	return dbRoundToModel(round)
}

func (r *Repository) ListRounds(ctx context.Context, gameID uuid.UUID) ([]models.Round, error) {
	rows, err := r.queries.ListRoundsByGame(ctx, gameID)
	if err != nil {
		return nil, mapErr("list rounds", err)
	}
	rounds := make([]models.Round, len(rows))
	for i, row := range rows {
		round, err := dbRoundToModel(row)
		if err != nil {
			return nil, err
		}
		rounds[i] = *round
	}
	return rounds, nil
}

// UpdateRoundStatusIf performs the guarded forward transition and
// reports whether this caller won it.
func (r *Repository) UpdateRoundStatusIf(ctx context.Context, id uuid.UUID, from, to models.RoundStatus) (bool, error) {
	rows, err := r.queries.UpdateRoundStatusIf(ctx, db.UpdateRoundStatusIfParams{
		ID:         id,
		FromStatus: db.RoundStatus(from),
		ToStatus:   db.RoundStatus(to),
	})
	if err != nil {
		return false, mapErr("update round status", err)
	}
	return rows > 0, nil
}

func dbRoundToModel(round db.Round) (*models.Round, error) {
	var categories []string
	if err := json.Unmarshal(round.Categories, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round categories: %w", err)
	}
	return &models.Round{
		ID:          round.ID,
		GameID:      round.GameID,
		RoundNumber: int(round.RoundNumber),
		Letter:      round.Letter,
		Categories:  categories,
		Status:      models.RoundStatus(round.Status),
		CreatedAt:   round.CreatedAt,
	}, nil
}
