package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/game/events"
	"github.com/mcdev12/stopgame/internal/game/repository"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
	"github.com/rs/zerolog/log"
)

// openRound creates round n for a game, announces it, and arms the
// advisory countdown. The unique (game, round_number) key means two
// racing openers collapse into one row; the loser resolves to the
// winner's round.
func (c *Coordinator) openRound(ctx context.Context, game *models.Game, number int) (*models.Round, error) {
	round, err := c.repo.CreateRound(ctx, repository.CreateRoundParams{
		ID:          uuid.New(),
		GameID:      game.ID,
		RoundNumber: number,
		Letter:      c.letters.Pick(),
		Categories:  c.rules.Categories,
	})
	if err != nil {
		if errors.Is(err, gameerr.ErrPreconditionFailed) {
			existing, getErr := c.repo.GetOpenRound(ctx, game.ID)
			if getErr != nil {
				return nil, fmt.Errorf("failed to resolve already-created round %d: %w", number, getErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create round %d: %w", number, err)
	}

	c.emit(game.ID, events.TypeRoundStarted, c.outbox.InsertRoundStarted(ctx, game.ID, events.RoundStartedPayload{
		RoundID:      round.ID.String(),
		RoundNumber:  round.RoundNumber,
		Letter:       round.Letter,
		Categories:   round.Categories,
		CountdownSec: c.rules.CountdownSeconds,
		StartedAt:    round.CreatedAt,
	}))
	c.timers.ArmCountdown(round.ID)

	log.Info().
		Str("game_id", game.ID.String()).
		Str("round_id", round.ID.String()).
		Int("round_number", round.RoundNumber).
		Str("letter", round.Letter).
		Msg("round started")
	return round, nil
}

// SubmitAnswers records a player's answers for an active round. Each
// row written arms the grace timer (the clock keeps only the first);
// the row completing the set closes the round. A repeat submission from
// the same player is a no-op: the first row wins and the retry succeeds
// without effect.
func (c *Coordinator) SubmitAnswers(ctx context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) error {
	round, err := c.repo.GetRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("failed to get round: %w", err)
	}
	if round.Status != models.RoundStatusActive {
		return gameerr.Preconditionf("round %d is %s, submissions are closed", round.RoundNumber, round.Status)
	}

	player, err := c.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}
	if player.GameID != round.GameID {
		return gameerr.Validationf("player %s is not in this game", playerID)
	}
	for category := range answers {
		if !round.HasCategory(category) {
			return gameerr.Validationf("unknown category %q", category)
		}
	}

	inserted, err := c.repo.InsertAnswerIfAbsent(ctx, roundID, playerID, answers)
	if err != nil {
		return fmt.Errorf("failed to insert answers: %w", err)
	}
	if !inserted {
		log.Debug().
			Str("round_id", roundID.String()).
			Str("player_id", playerID.String()).
			Msg("duplicate submission ignored")
		return nil
	}

	// Every successful insert arms the grace timer: racing submissions
	// can each see a count above one with neither having armed, so the
	// count cannot decide who was first. Arming is idempotent, only one
	// timer ever runs.
	c.timers.ArmGrace(roundID)

	count, err := c.repo.CountAnswers(ctx, roundID)
	if err != nil {
		return fmt.Errorf("failed to count answers: %w", err)
	}
	first := count == 1

	c.emit(round.GameID, events.TypeAnswerSubmitted, c.outbox.InsertAnswerSubmitted(ctx, round.GameID, events.AnswerSubmittedPayload{
		RoundID:     roundID.String(),
		PlayerID:    playerID.String(),
		First:       first,
		GraceSec:    c.rules.GraceSeconds,
		SubmittedAt: time.Now().UTC(),
	}))

	players, err := c.repo.ListPlayers(ctx, round.GameID)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if count >= len(players) {
		return c.closeRound(ctx, round)
	}
	return nil
}

// closeRound moves a round from active to voting. It is called from the
// all-submitted path and the grace-timer path; the guarded transition
// means whichever caller lands second does nothing. Players who never
// submitted get a blank answer row so voting and scoring see the full
// roster.
func (c *Coordinator) closeRound(ctx context.Context, round *models.Round) error {
	// EndGame completes the game without touching the round, so a timer
	// firing that escaped cancellation could still win the round guard.
	// A completed game takes no further mutation.
	game, err := c.repo.GetGame(ctx, round.GameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game.Status != models.GameStatusActive {
		return nil
	}

	won, err := c.repo.UpdateRoundStatusIf(ctx, round.ID, models.RoundStatusActive, models.RoundStatusVoting)
	if err != nil {
		return fmt.Errorf("failed to close round: %w", err)
	}
	if !won {
		return nil
	}

	c.timers.CancelRound(round.ID)

	players, err := c.repo.ListPlayers(ctx, round.GameID)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	for _, p := range players {
		if _, err := c.repo.InsertAnswerIfAbsent(ctx, round.ID, p.ID, nil); err != nil {
			return fmt.Errorf("failed to backfill blank answers: %w", err)
		}
	}

	c.timers.ArmVoting(round.ID)
	c.emit(round.GameID, events.TypeVotingStarted, c.outbox.InsertVotingStarted(ctx, round.GameID, events.VotingStartedPayload{
		RoundID:   round.ID.String(),
		VotingSec: c.rules.VotingSeconds,
		StartedAt: time.Now().UTC(),
	}))

	log.Info().
		Str("round_id", round.ID.String()).
		Int("round_number", round.RoundNumber).
		Msg("round closed, voting open")
	return nil
}

// FinalizeVoting lets the host cut voting short. Losing the guarded
// voting->scored transition here is an error the host can see, unlike
// the timer path where it is silent.
func (c *Coordinator) FinalizeVoting(ctx context.Context, roundID, playerID uuid.UUID) error {
	round, err := c.repo.GetRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("failed to get round: %w", err)
	}
	game, err := c.repo.GetGame(ctx, round.GameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if !game.IsHost(playerID) {
		return gameerr.Validationf("only the host can finalize voting")
	}
	if game.Status != models.GameStatusActive {
		return gameerr.Preconditionf("game %s is %s", game.GameCode, game.Status)
	}

	scored, err := c.scoreRound(ctx, round)
	if err != nil {
		return err
	}
	if !scored {
		return gameerr.Preconditionf("round %d is not open for voting", round.RoundNumber)
	}
	return nil
}

// scoreRound performs the voting->scored transition, applies score
// deltas, and either completes the game or opens the next round. It
// returns false without error when another caller already won the
// transition or the game is no longer active. Deltas are computed from
// immutable answer and vote rows, so the winner's arithmetic is
// deterministic no matter who ran it.
func (c *Coordinator) scoreRound(ctx context.Context, round *models.Round) (bool, error) {
	// Re-read the game: EndGame leaves the round in voting, and scoring
	// a completed game would mutate scores and open a fresh round.
	game, err := c.repo.GetGame(ctx, round.GameID)
	if err != nil {
		return false, fmt.Errorf("failed to get game: %w", err)
	}
	if game.Status != models.GameStatusActive {
		return false, nil
	}

	won, err := c.repo.UpdateRoundStatusIf(ctx, round.ID, models.RoundStatusVoting, models.RoundStatusScored)
	if err != nil {
		return false, fmt.Errorf("failed to mark round scored: %w", err)
	}
	if !won {
		return false, nil
	}

	c.timers.CancelRound(round.ID)

	answers, err := c.repo.ListAnswers(ctx, round.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list answers: %w", err)
	}
	votes, err := c.repo.ListVotes(ctx, round.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list votes: %w", err)
	}
	players, err := c.repo.ListPlayers(ctx, round.GameID)
	if err != nil {
		return false, fmt.Errorf("failed to list players: %w", err)
	}

	deltas := c.engine.Score(round, answers, votes, len(players))
	payloadDeltas := make(map[string]int, len(deltas))
	for playerID, delta := range deltas {
		payloadDeltas[playerID.String()] = delta
		if delta == 0 {
			continue
		}
		if err := c.repo.AddToPlayerScore(ctx, playerID, delta); err != nil {
			return false, fmt.Errorf("failed to apply score delta: %w", err)
		}
	}

	c.emit(game.ID, events.TypeRoundScored, c.outbox.InsertRoundScored(ctx, game.ID, events.RoundScoredPayload{
		RoundID:     round.ID.String(),
		RoundNumber: round.RoundNumber,
		Deltas:      payloadDeltas,
		ScoredAt:    time.Now().UTC(),
	}))
	log.Info().
		Str("round_id", round.ID.String()).
		Int("round_number", round.RoundNumber).
		Msg("round scored")

	return true, c.advanceGame(ctx, game, round)
}

// advanceGame decides what follows a scored round: game over on target
// score or round limit, otherwise the next round.
func (c *Coordinator) advanceGame(ctx context.Context, game *models.Game, round *models.Round) error {
	players, err := c.repo.ListPlayers(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	reason := models.EndReason("")
	for _, p := range players {
		if p.Score >= game.TargetScore {
			reason = models.EndReasonScore
			break
		}
	}
	if reason == "" && round.RoundNumber >= game.MaxRounds {
		reason = models.EndReasonRounds
	}

	if reason == "" {
		_, err := c.openRound(ctx, game, round.RoundNumber+1)
		return err
	}

	won, err := c.repo.CompleteGame(ctx, game.ID, reason)
	if err != nil {
		return fmt.Errorf("failed to complete game: %w", err)
	}
	if won {
		c.emit(game.ID, events.TypeGameCompleted, c.outbox.InsertGameCompleted(ctx, game.ID, events.GameCompletedPayload{
			GameID:      game.ID.String(),
			EndReason:   string(reason),
			CompletedAt: time.Now().UTC(),
		}))
		log.Info().
			Str("game_id", game.ID.String()).
			Str("end_reason", string(reason)).
			Msg("game completed")
	}
	return nil
}
