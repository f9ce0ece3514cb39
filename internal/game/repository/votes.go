package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/models"
)

// UpsertVote records a validity judgment, replacing any earlier vote by
// the same voter on the same (category, subject) pair.
func (r *Repository) UpsertVote(ctx context.Context, vote models.Vote) error {
	err := r.queries.UpsertVote(ctx, db.UpsertVoteParams{
		RoundID:         vote.RoundID,
		Category:        vote.Category,
		SubjectPlayerID: vote.SubjectPlayerID,
		VoterPlayerID:   vote.VoterPlayerID,
		IsValid:         vote.IsValid,
	})
	if err != nil {
		return mapErr("upsert vote", err)
	}
	return nil
}

func (r *Repository) ListVotes(ctx context.Context, roundID uuid.UUID) ([]models.Vote, error) {
	rows, err := r.queries.ListVotesByRound(ctx, roundID)
	if err != nil {
		return nil, mapErr("list votes", err)
	}
	votes := make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = models.Vote{
			RoundID:         row.RoundID,
			Category:        row.Category,
			SubjectPlayerID: row.SubjectPlayerID,
			VoterPlayerID:   row.VoterPlayerID,
			IsValid:         row.IsValid,
			CreatedAt:       row.CreatedAt,
		}
	}
	return votes, nil
}
