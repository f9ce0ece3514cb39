package coordinator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
	"github.com/rs/zerolog/log"
)

// Timer firings re-read current state before acting. A firing that
// raced with a request path and lost finds the status already advanced
// and does nothing, so stale timers are harmless. closeRound and
// scoreRound additionally re-read the game, covering firings that
// escaped cancellation when the host ended the game.

// HandleCountdownFinished marks the end of the advisory pre-round
// countdown. Submission opened when the round did, so there is nothing
// to transition.
func (c *Coordinator) HandleCountdownFinished(_ context.Context, roundID uuid.UUID) {
	log.Debug().Str("round_id", roundID.String()).Msg("round countdown finished")
}

// HandleGraceExpired closes the round if it is still active.
func (c *Coordinator) HandleGraceExpired(ctx context.Context, roundID uuid.UUID) {
	round, err := c.repo.GetRound(ctx, roundID)
	if err != nil {
		logTimerErr(err, roundID, "grace")
		return
	}
	if round.Status != models.RoundStatusActive {
		return
	}
	if err := c.closeRound(ctx, round); err != nil {
		logTimerErr(err, roundID, "grace")
	}
}

// HandleVotingExpired finalizes voting if the round is still in it.
func (c *Coordinator) HandleVotingExpired(ctx context.Context, roundID uuid.UUID) {
	round, err := c.repo.GetRound(ctx, roundID)
	if err != nil {
		logTimerErr(err, roundID, "voting")
		return
	}
	if round.Status != models.RoundStatusVoting {
		return
	}
	if _, err := c.scoreRound(ctx, round); err != nil {
		logTimerErr(err, roundID, "voting")
	}
}

func logTimerErr(err error, roundID uuid.UUID, kind string) {
	if errors.Is(err, gameerr.ErrNotFound) || errors.Is(err, gameerr.ErrPreconditionFailed) {
		// Already handled by a request path.
		return
	}
	log.Error().
		Err(err).
		Str("round_id", roundID.String()).
		Str("timer", kind).
		Msg("timer handler failed")
}
