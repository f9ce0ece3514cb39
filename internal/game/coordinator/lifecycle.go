package coordinator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/game/events"
	"github.com/mcdev12/stopgame/internal/game/repository"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
	"github.com/rs/zerolog/log"
)

// Join codes skip 0/O and 1/I so players can read them aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeLength      = 6
	codeMaxAttempts = 5
	minPlayers      = 2
	maxNameLength   = 32
)

func newGameCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// CreateGame creates a lobby with a fresh join code and its host player.
// Code collisions surface as precondition failures from the unique
// index, so creation simply retries with a new code.
func (c *Coordinator) CreateGame(ctx context.Context, hostName string) (*models.Game, *models.Player, error) {
	if err := validatePlayerName(hostName); err != nil {
		return nil, nil, err
	}

	var game *models.Game
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		created, err := c.repo.CreateGame(ctx, repository.CreateGameParams{
			ID:          uuid.New(),
			GameCode:    newGameCode(),
			TargetScore: c.rules.TargetScore,
			MaxRounds:   c.rules.MaxRounds,
		})
		if err != nil {
			if errors.Is(err, gameerr.ErrPreconditionFailed) {
				continue
			}
			return nil, nil, fmt.Errorf("failed to create game: %w", err)
		}
		game = created
		break
	}
	if game == nil {
		return nil, nil, fmt.Errorf("failed to allocate a unique game code after %d attempts", codeMaxAttempts)
	}

	host, err := c.repo.CreatePlayer(ctx, repository.CreatePlayerParams{
		ID:     uuid.New(),
		GameID: game.ID,
		Name:   strings.TrimSpace(hostName),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create host player: %w", err)
	}
	if err := c.repo.SetGameHost(ctx, game.ID, host.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to assign host: %w", err)
	}
	game.HostPlayerID = &host.ID

	c.emit(game.ID, events.TypePlayerJoined, c.outbox.InsertPlayerJoined(ctx, game.ID, events.PlayerJoinedPayload{
		PlayerID:   host.ID.String(),
		PlayerName: host.Name,
		JoinedAt:   host.CreatedAt,
	}))

	log.Info().
		Str("game_id", game.ID.String()).
		Str("game_code", game.GameCode).
		Str("host", host.Name).
		Msg("created game")
	return game, host, nil
}

// JoinGame adds a player to a lobby by join code. Games past the lobby
// stage reject joins with a precondition failure.
func (c *Coordinator) JoinGame(ctx context.Context, code, playerName string) (*models.Game, *models.Player, error) {
	if err := validatePlayerName(playerName); err != nil {
		return nil, nil, err
	}

	game, err := c.repo.GetGameByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up game: %w", err)
	}
	if game.Status != models.GameStatusLobby {
		return nil, nil, gameerr.Preconditionf("game %s is %s and no longer accepting players", game.GameCode, game.Status)
	}

	name := strings.TrimSpace(playerName)
	existing, err := c.repo.ListPlayers(ctx, game.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			return nil, nil, gameerr.Validationf("player name %q is already taken in this game", name)
		}
	}

	player, err := c.repo.CreatePlayer(ctx, repository.CreatePlayerParams{
		ID:     uuid.New(),
		GameID: game.ID,
		Name:   name,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create player: %w", err)
	}

	c.emit(game.ID, events.TypePlayerJoined, c.outbox.InsertPlayerJoined(ctx, game.ID, events.PlayerJoinedPayload{
		PlayerID:   player.ID.String(),
		PlayerName: player.Name,
		JoinedAt:   player.CreatedAt,
	}))

	log.Info().
		Str("game_id", game.ID.String()).
		Str("player", player.Name).
		Msg("player joined")
	return game, player, nil
}

// StartGame moves a lobby to active and opens round one. Only the host
// may start, and a lobby needs at least two players. The lobby->active
// transition is guarded, so a doubled start request is a precondition
// failure for the loser and nothing more.
func (c *Coordinator) StartGame(ctx context.Context, gameID, playerID uuid.UUID) (*models.Round, error) {
	game, err := c.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if !game.IsHost(playerID) {
		return nil, gameerr.Validationf("only the host can start the game")
	}

	players, err := c.repo.ListPlayers(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) < minPlayers {
		return nil, gameerr.Validationf("need at least %d players to start, have %d", minPlayers, len(players))
	}

	won, err := c.repo.UpdateGameStatusIf(ctx, gameID, models.GameStatusLobby, models.GameStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to activate game: %w", err)
	}
	if !won {
		return nil, gameerr.Preconditionf("game %s is not in the lobby", game.GameCode)
	}

	c.emit(gameID, events.TypeGameStarted, c.outbox.InsertGameStarted(ctx, gameID, events.GameStartedPayload{
		GameID:      gameID.String(),
		TargetScore: game.TargetScore,
		MaxRounds:   game.MaxRounds,
		StartedAt:   time.Now().UTC(),
	}))

	round, err := c.openRound(ctx, game, 1)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("game_id", gameID.String()).
		Int("players", len(players)).
		Msg("game started")
	return round, nil
}

// EndGame lets the host end a game early. The completion write is
// guarded, so ending an already-completed game fails the precondition.
func (c *Coordinator) EndGame(ctx context.Context, gameID, playerID uuid.UUID) error {
	game, err := c.repo.GetGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if !game.IsHost(playerID) {
		return gameerr.Validationf("only the host can end the game")
	}

	if round, err := c.repo.GetOpenRound(ctx, gameID); err == nil {
		c.timers.CancelRound(round.ID)
	} else if !errors.Is(err, gameerr.ErrNotFound) {
		return fmt.Errorf("failed to get open round: %w", err)
	}

	won, err := c.repo.CompleteGame(ctx, gameID, models.EndReasonManual)
	if err != nil {
		return fmt.Errorf("failed to complete game: %w", err)
	}
	if !won {
		return gameerr.Preconditionf("game %s is already completed", game.GameCode)
	}

	c.emit(gameID, events.TypeGameCompleted, c.outbox.InsertGameCompleted(ctx, gameID, events.GameCompletedPayload{
		GameID:      gameID.String(),
		EndReason:   string(models.EndReasonManual),
		CompletedAt: time.Now().UTC(),
	}))

	log.Info().Str("game_id", gameID.String()).Msg("game ended by host")
	return nil
}

// GameState is the full read-side snapshot of a game, assembled for
// clients joining late or reconciling after a missed event.
type GameState struct {
	Game         *models.Game    `json:"game"`
	Players      []models.Player `json:"players"`
	Rounds       []models.Round  `json:"rounds"`
	CurrentRound *RoundState     `json:"current_round,omitempty"`
}

// RoundState describes the open round. Submitted always lists who has
// answered; Answers and Votes are populated only once voting starts,
// so players cannot read each other's answers mid-round.
type RoundState struct {
	Round     *models.Round   `json:"round"`
	Submitted []uuid.UUID     `json:"submitted"`
	Answers   []models.Answer `json:"answers,omitempty"`
	Votes     []models.Vote   `json:"votes,omitempty"`
}

// GetGameState assembles the snapshot for a game.
func (c *Coordinator) GetGameState(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	game, err := c.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	players, err := c.repo.ListPlayers(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	rounds, err := c.repo.ListRounds(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	state := &GameState{Game: game, Players: players, Rounds: rounds}

	round, err := c.repo.GetOpenRound(ctx, gameID)
	if err != nil {
		if errors.Is(err, gameerr.ErrNotFound) {
			return state, nil
		}
		return nil, fmt.Errorf("failed to get open round: %w", err)
	}

	answers, err := c.repo.ListAnswers(ctx, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	rs := &RoundState{Round: round}
	for _, a := range answers {
		rs.Submitted = append(rs.Submitted, a.PlayerID)
	}
	if round.Status == models.RoundStatusVoting {
		rs.Answers = answers
		votes, err := c.repo.ListVotes(ctx, round.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list votes: %w", err)
		}
		rs.Votes = votes
	}
	state.CurrentRound = rs
	return state, nil
}

// GetGameStateByCode is GetGameState keyed by join code.
func (c *Coordinator) GetGameStateByCode(ctx context.Context, code string) (*GameState, error) {
	game, err := c.repo.GetGameByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up game: %w", err)
	}
	return c.GetGameState(ctx, game.ID)
}

func validatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return gameerr.Validationf("player name is required")
	}
	if len(trimmed) > maxNameLength {
		return gameerr.Validationf("player name exceeds %d characters", maxNameLength)
	}
	return nil
}

// emit logs a failed outbox insert instead of failing the caller:
// clients that miss an event reconcile by re-reading game state.
func (c *Coordinator) emit(gameID uuid.UUID, eventType string, err error) {
	if err != nil {
		log.Error().
			Err(err).
			Str("game_id", gameID.String()).
			Str("event_type", eventType).
			Msg("failed to insert outbox event")
	}
}
