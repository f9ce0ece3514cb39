package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/game/events"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
)

// CastVote records one voter's validity judgment of one subject's
// answer in one category. Re-voting replaces the earlier vote; votes
// landing after the round leaves voting fail the precondition.
func (c *Coordinator) CastVote(ctx context.Context, roundID, voterID uuid.UUID, category string, subjectID uuid.UUID, isValid bool) error {
	round, err := c.repo.GetRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("failed to get round: %w", err)
	}
	if round.Status != models.RoundStatusVoting {
		return gameerr.Preconditionf("round %d is %s, voting is closed", round.RoundNumber, round.Status)
	}
	if !round.HasCategory(category) {
		return gameerr.Validationf("unknown category %q", category)
	}
	if voterID == subjectID {
		return gameerr.Validationf("players cannot vote on their own answers")
	}

	voter, err := c.repo.GetPlayer(ctx, voterID)
	if err != nil {
		return fmt.Errorf("failed to get voter: %w", err)
	}
	subject, err := c.repo.GetPlayer(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to get subject: %w", err)
	}
	if voter.GameID != round.GameID || subject.GameID != round.GameID {
		return gameerr.Validationf("vote references a player outside this game")
	}

	if err := c.repo.UpsertVote(ctx, models.Vote{
		RoundID:         roundID,
		Category:        category,
		SubjectPlayerID: subjectID,
		VoterPlayerID:   voterID,
		IsValid:         isValid,
	}); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	c.emit(round.GameID, events.TypeVoteCast, c.outbox.InsertVoteCast(ctx, round.GameID, events.VoteCastPayload{
		RoundID:         roundID.String(),
		Category:        category,
		SubjectPlayerID: subjectID.String(),
		VoterPlayerID:   voterID.String(),
		IsValid:         isValid,
		CastAt:          time.Now().UTC(),
	}))
	return nil
}
