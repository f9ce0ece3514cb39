package coordinator

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/game/events"
	"github.com/mcdev12/stopgame/internal/game/repository"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
)

// fakeRepo is an in-memory store whose conditional writes are atomic
// under one mutex, mirroring the real store's row-level guarantees.
type fakeRepo struct {
	mu      sync.Mutex
	games   map[uuid.UUID]*models.Game
	players map[uuid.UUID]*models.Player
	rounds  map[uuid.UUID]*models.Round
	answers map[uuid.UUID]map[uuid.UUID]*models.Answer // roundID -> playerID
	votes   map[uuid.UUID]map[string]*models.Vote      // roundID -> key
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		games:   make(map[uuid.UUID]*models.Game),
		players: make(map[uuid.UUID]*models.Player),
		rounds:  make(map[uuid.UUID]*models.Round),
		answers: make(map[uuid.UUID]map[uuid.UUID]*models.Answer),
		votes:   make(map[uuid.UUID]map[string]*models.Vote),
	}
}

func (f *fakeRepo) CreateGame(_ context.Context, params repository.CreateGameParams) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.GameCode == params.GameCode {
			return nil, gameerr.Preconditionf("game code %s taken", params.GameCode)
		}
	}
	game := &models.Game{
		ID:          params.ID,
		GameCode:    params.GameCode,
		Status:      models.GameStatusLobby,
		TargetScore: params.TargetScore,
		MaxRounds:   params.MaxRounds,
		CreatedAt:   time.Now(),
	}
	f.games[game.ID] = game
	return copyGame(game), nil
}

func (f *fakeRepo) GetGame(_ context.Context, id uuid.UUID) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[id]
	if !ok {
		return nil, gameerr.ErrNotFound
	}
	return copyGame(game), nil
}

func (f *fakeRepo) GetGameByCode(_ context.Context, code string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.GameCode == code {
			return copyGame(g), nil
		}
	}
	return nil, gameerr.ErrNotFound
}

func (f *fakeRepo) SetGameHost(_ context.Context, gameID, playerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[gameID]
	if !ok {
		return gameerr.ErrNotFound
	}
	id := playerID
	game.HostPlayerID = &id
	return nil
}

func (f *fakeRepo) UpdateGameStatusIf(_ context.Context, id uuid.UUID, from, to models.GameStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[id]
	if !ok {
		return false, gameerr.ErrNotFound
	}
	if game.Status != from {
		return false, nil
	}
	game.Status = to
	return true, nil
}

func (f *fakeRepo) CompleteGame(_ context.Context, id uuid.UUID, reason models.EndReason) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[id]
	if !ok {
		return false, gameerr.ErrNotFound
	}
	if game.Status == models.GameStatusCompleted {
		return false, nil
	}
	game.Status = models.GameStatusCompleted
	r := reason
	game.EndReason = &r
	return true, nil
}

func (f *fakeRepo) CreatePlayer(_ context.Context, params repository.CreatePlayerParams) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player := &models.Player{
		ID:        params.ID,
		GameID:    params.GameID,
		Name:      params.Name,
		CreatedAt: time.Now(),
	}
	f.players[player.ID] = player
	return copyPlayer(player), nil
}

func (f *fakeRepo) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[id]
	if !ok {
		return nil, gameerr.ErrNotFound
	}
	return copyPlayer(player), nil
}

func (f *fakeRepo) ListPlayers(_ context.Context, gameID uuid.UUID) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Player
	for _, p := range f.players {
		if p.GameID == gameID {
			out = append(out, *copyPlayer(p))
		}
	}
	return out, nil
}

func (f *fakeRepo) AddToPlayerScore(_ context.Context, playerID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[playerID]
	if !ok {
		return gameerr.ErrNotFound
	}
	player.Score += delta
	return nil
}

func (f *fakeRepo) CreateRound(_ context.Context, params repository.CreateRoundParams) (*models.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rounds {
		if r.GameID == params.GameID && r.RoundNumber == params.RoundNumber {
			return nil, gameerr.Preconditionf("round %d already exists", params.RoundNumber)
		}
	}
	round := &models.Round{
		ID:          params.ID,
		GameID:      params.GameID,
		RoundNumber: params.RoundNumber,
		Letter:      params.Letter,
		Categories:  append([]string(nil), params.Categories...),
		Status:      models.RoundStatusActive,
		CreatedAt:   time.Now(),
	}
	f.rounds[round.ID] = round
	return copyRound(round), nil
}

func (f *fakeRepo) GetRound(_ context.Context, id uuid.UUID) (*models.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	round, ok := f.rounds[id]
	if !ok {
		return nil, gameerr.ErrNotFound
	}
	return copyRound(round), nil
}

func (f *fakeRepo) GetOpenRound(_ context.Context, gameID uuid.UUID) (*models.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rounds {
		if r.GameID == gameID && r.Status != models.RoundStatusScored {
			return copyRound(r), nil
		}
	}
	return nil, gameerr.ErrNotFound
}

func (f *fakeRepo) ListRounds(_ context.Context, gameID uuid.UUID) ([]models.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Round
	for _, r := range f.rounds {
		if r.GameID == gameID {
			out = append(out, *copyRound(r))
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateRoundStatusIf(_ context.Context, id uuid.UUID, from, to models.RoundStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	round, ok := f.rounds[id]
	if !ok {
		return false, gameerr.ErrNotFound
	}
	if round.Status != from {
		return false, nil
	}
	round.Status = to
	return true, nil
}

func (f *fakeRepo) InsertAnswerIfAbsent(_ context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byPlayer := f.answers[roundID]
	if byPlayer == nil {
		byPlayer = make(map[uuid.UUID]*models.Answer)
		f.answers[roundID] = byPlayer
	}
	if _, exists := byPlayer[playerID]; exists {
		return false, nil
	}
	var set models.AnswerSet
	if answers != nil {
		set = make(models.AnswerSet, len(answers))
		for k, v := range answers {
			set[k] = v
		}
	}
	byPlayer[playerID] = &models.Answer{
		RoundID:   roundID,
		PlayerID:  playerID,
		Answers:   set,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (f *fakeRepo) ListAnswers(_ context.Context, roundID uuid.UUID) ([]models.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Answer
	for _, a := range f.answers[roundID] {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) CountAnswers(_ context.Context, roundID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.answers[roundID]), nil
}

func (f *fakeRepo) UpsertVote(_ context.Context, vote models.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	byKey := f.votes[vote.RoundID]
	if byKey == nil {
		byKey = make(map[string]*models.Vote)
		f.votes[vote.RoundID] = byKey
	}
	key := strings.Join([]string{vote.Category, vote.SubjectPlayerID.String(), vote.VoterPlayerID.String()}, "|")
	v := vote
	v.CreatedAt = time.Now()
	byKey[key] = &v
	return nil
}

func (f *fakeRepo) ListVotes(_ context.Context, roundID uuid.UUID) ([]models.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Vote
	for _, v := range f.votes[roundID] {
		out = append(out, *v)
	}
	return out, nil
}

func copyGame(g *models.Game) *models.Game {
	cp := *g
	if g.HostPlayerID != nil {
		id := *g.HostPlayerID
		cp.HostPlayerID = &id
	}
	if g.EndReason != nil {
		r := *g.EndReason
		cp.EndReason = &r
	}
	return &cp
}

func copyPlayer(p *models.Player) *models.Player {
	cp := *p
	return &cp
}

func copyRound(r *models.Round) *models.Round {
	cp := *r
	cp.Categories = append([]string(nil), r.Categories...)
	return &cp
}

// fakeOutbox records inserted event types in order.
type fakeOutbox struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeOutbox) record(eventType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakeOutbox) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeOutbox) count(eventType string) int {
	n := 0
	for _, t := range f.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

func (f *fakeOutbox) InsertPlayerJoined(context.Context, uuid.UUID, events.PlayerJoinedPayload) error {
	return f.record(events.TypePlayerJoined)
}
func (f *fakeOutbox) InsertGameStarted(context.Context, uuid.UUID, events.GameStartedPayload) error {
	return f.record(events.TypeGameStarted)
}
func (f *fakeOutbox) InsertRoundStarted(context.Context, uuid.UUID, events.RoundStartedPayload) error {
	return f.record(events.TypeRoundStarted)
}
func (f *fakeOutbox) InsertAnswerSubmitted(context.Context, uuid.UUID, events.AnswerSubmittedPayload) error {
	return f.record(events.TypeAnswerSubmitted)
}
func (f *fakeOutbox) InsertVotingStarted(context.Context, uuid.UUID, events.VotingStartedPayload) error {
	return f.record(events.TypeVotingStarted)
}
func (f *fakeOutbox) InsertVoteCast(context.Context, uuid.UUID, events.VoteCastPayload) error {
	return f.record(events.TypeVoteCast)
}
func (f *fakeOutbox) InsertRoundScored(context.Context, uuid.UUID, events.RoundScoredPayload) error {
	return f.record(events.TypeRoundScored)
}
func (f *fakeOutbox) InsertGameCompleted(context.Context, uuid.UUID, events.GameCompletedPayload) error {
	return f.record(events.TypeGameCompleted)
}

// fakeTimers records armed and cancelled timers without scheduling
// anything; tests drive expirations by calling the handler directly.
type fakeTimers struct {
	mu        sync.Mutex
	countdown map[uuid.UUID]int
	grace     map[uuid.UUID]int
	voting    map[uuid.UUID]int
	cancelled map[uuid.UUID]int
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{
		countdown: make(map[uuid.UUID]int),
		grace:     make(map[uuid.UUID]int),
		voting:    make(map[uuid.UUID]int),
		cancelled: make(map[uuid.UUID]int),
	}
}

func (f *fakeTimers) ArmCountdown(roundID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countdown[roundID]++
}

func (f *fakeTimers) ArmGrace(roundID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grace[roundID]++
}

func (f *fakeTimers) ArmVoting(roundID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voting[roundID]++
}

func (f *fakeTimers) CancelRound(roundID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled[roundID]++
}

func (f *fakeTimers) graceArms(roundID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grace[roundID]
}

func (f *fakeTimers) votingArms(roundID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voting[roundID]
}

// fixedPicker always returns the same letter.
type fixedPicker struct{ letter string }

func (p fixedPicker) Pick() string { return p.letter }
