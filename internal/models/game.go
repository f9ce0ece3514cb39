package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus defines the lifecycle status of a game.
type GameStatus string

const (
	GameStatusLobby     GameStatus = "lobby"
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
)

// EndReason records why a completed game ended.
type EndReason string

const (
	EndReasonScore  EndReason = "score"  // a player reached the target score
	EndReasonRounds EndReason = "rounds" // max rounds were played
	EndReasonManual EndReason = "manual" // the host ended the game
)

// Game represents a game instance. Status is mutated only by the
// coordinator through guarded transitions.
type Game struct {
	ID           uuid.UUID  `json:"id"`
	GameCode     string     `json:"game_code"`
	Status       GameStatus `json:"status"`
	HostPlayerID *uuid.UUID `json:"host_player_id,omitempty"`
	TargetScore  int        `json:"target_score"`
	MaxRounds    int        `json:"max_rounds"`
	EndReason    *EndReason `json:"end_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsHost reports whether playerID is the game's designated host.
func (g *Game) IsHost(playerID uuid.UUID) bool {
	return g.HostPlayerID != nil && *g.HostPlayerID == playerID
}
