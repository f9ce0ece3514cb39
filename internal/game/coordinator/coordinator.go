// Package coordinator owns the game state machine. Every transition is
// a guarded conditional write through the repository; the coordinator
// holds no per-game locks and no authoritative in-memory state, so any
// number of racing requests and timer firings converge on one winner
// per transition and losers see a benign precondition failure.
package coordinator

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/config"
	"github.com/mcdev12/stopgame/internal/game/clock"
	"github.com/mcdev12/stopgame/internal/game/events"
	"github.com/mcdev12/stopgame/internal/game/repository"
	"github.com/mcdev12/stopgame/internal/game/scoring"
	"github.com/mcdev12/stopgame/internal/models"
)

// Repository defines what the coordinator needs from the store. Every
// UpdateXxxIf method is a conditional write: it returns true when this
// caller performed the transition and false when the guard no longer
// held.
type Repository interface {
	CreateGame(ctx context.Context, params repository.CreateGameParams) (*models.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetGameByCode(ctx context.Context, code string) (*models.Game, error)
	SetGameHost(ctx context.Context, gameID, playerID uuid.UUID) error
	UpdateGameStatusIf(ctx context.Context, id uuid.UUID, from, to models.GameStatus) (bool, error)
	CompleteGame(ctx context.Context, id uuid.UUID, reason models.EndReason) (bool, error)

	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, gameID uuid.UUID) ([]models.Player, error)
	AddToPlayerScore(ctx context.Context, playerID uuid.UUID, delta int) error

	CreateRound(ctx context.Context, params repository.CreateRoundParams) (*models.Round, error)
	GetRound(ctx context.Context, id uuid.UUID) (*models.Round, error)
	GetOpenRound(ctx context.Context, gameID uuid.UUID) (*models.Round, error)
	ListRounds(ctx context.Context, gameID uuid.UUID) ([]models.Round, error)
	UpdateRoundStatusIf(ctx context.Context, id uuid.UUID, from, to models.RoundStatus) (bool, error)

	InsertAnswerIfAbsent(ctx context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) (bool, error)
	ListAnswers(ctx context.Context, roundID uuid.UUID) ([]models.Answer, error)
	CountAnswers(ctx context.Context, roundID uuid.UUID) (int, error)

	UpsertVote(ctx context.Context, vote models.Vote) error
	ListVotes(ctx context.Context, roundID uuid.UUID) ([]models.Vote, error)
}

// Outbox defines what the coordinator needs from the outbox app layer.
// Event writes are advisory; a failed insert is logged, never bubbled
// into the caller's result.
type Outbox interface {
	InsertPlayerJoined(ctx context.Context, gameID uuid.UUID, payload events.PlayerJoinedPayload) error
	InsertGameStarted(ctx context.Context, gameID uuid.UUID, payload events.GameStartedPayload) error
	InsertRoundStarted(ctx context.Context, gameID uuid.UUID, payload events.RoundStartedPayload) error
	InsertAnswerSubmitted(ctx context.Context, gameID uuid.UUID, payload events.AnswerSubmittedPayload) error
	InsertVotingStarted(ctx context.Context, gameID uuid.UUID, payload events.VotingStartedPayload) error
	InsertVoteCast(ctx context.Context, gameID uuid.UUID, payload events.VoteCastPayload) error
	InsertRoundScored(ctx context.Context, gameID uuid.UUID, payload events.RoundScoredPayload) error
	InsertGameCompleted(ctx context.Context, gameID uuid.UUID, payload events.GameCompletedPayload) error
}

// RoundTimers defines what the coordinator needs from the round clock.
type RoundTimers interface {
	ArmCountdown(roundID uuid.UUID)
	ArmGrace(roundID uuid.UUID)
	ArmVoting(roundID uuid.UUID)
	CancelRound(roundID uuid.UUID)
}

// LetterPicker picks a round letter.
type LetterPicker interface {
	Pick() string
}

// Coordinator drives games through lobby, rounds, voting, scoring, and
// completion. It is safe for concurrent use from any number of request
// and timer goroutines.
type Coordinator struct {
	repo    Repository
	outbox  Outbox
	timers  RoundTimers
	engine  *scoring.Engine
	letters LetterPicker
	rules   config.Rules
}

// NewCoordinator creates a coordinator. The rules set is fixed for the
// process lifetime; per-game target score and max rounds are snapshotted
// into the game row at creation.
func NewCoordinator(repo Repository, outbox Outbox, timers RoundTimers, picker LetterPicker, rules config.Rules) *Coordinator {
	engine := scoring.NewEngine(scoring.Rules{
		UniquePoints:    rules.UniquePoints,
		DuplicatePoints: rules.DuplicatePoints,
		TieIsValid:      rules.TieValid(),
	})
	return &Coordinator{
		repo:    repo,
		outbox:  outbox,
		timers:  timers,
		engine:  engine,
		letters: picker,
		rules:   rules,
	}
}

var _ clock.Handler = (*Coordinator)(nil)
