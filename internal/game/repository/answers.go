package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/models"
)

// InsertAnswerIfAbsent writes a player's answer row unless one already
// exists, reporting whether this call created it. A nil answer set
// stores NULL, which is the force-created blank row for a player who
// never submitted.
func (r *Repository) InsertAnswerIfAbsent(ctx context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) (bool, error) {
	var raw pqtype.NullRawMessage
	if answers != nil {
		data, err := json.Marshal(answers)
		if err != nil {
			return false, fmt.Errorf("failed to marshal answers: %w", err)
		}
		raw = pqtype.NullRawMessage{RawMessage: data, Valid: true}
	}

	rows, err := r.queries.InsertAnswerIfAbsent(ctx, db.InsertAnswerIfAbsentParams{
		RoundID:  roundID,
		PlayerID: playerID,
		Answers:  raw,
	})
	if err != nil {
		return false, mapErr("insert answer", err)
	}
	return rows > 0, nil
}

func (r *Repository) ListAnswers(ctx context.Context, roundID uuid.UUID) ([]models.Answer, error) {
	rows, err := r.queries.ListAnswersByRound(ctx, roundID)
	if err != nil {
		return nil, mapErr("list answers", err)
	}
	answers := make([]models.Answer, len(rows))
	for i, row := range rows {
		answer, err := dbAnswerToModel(row)
		if err != nil {
			return nil, err
		}
		answers[i] = *answer
	}
	return answers, nil
}

func (r *Repository) CountAnswers(ctx context.Context, roundID uuid.UUID) (int, error) {
	count, err := r.queries.CountAnswersByRound(ctx, roundID)
	if err != nil {
		return 0, mapErr("count answers", err)
	}
	return int(count), nil
}

func dbAnswerToModel(answer db.Answer) (*models.Answer, error) {
	m := &models.Answer{
		RoundID:   answer.RoundID,
		PlayerID:  answer.PlayerID,
		CreatedAt: answer.CreatedAt,
	}
	if answer.Answers.Valid {
		if err := json.Unmarshal(answer.Answers.RawMessage, &m.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}
	return m, nil
}
