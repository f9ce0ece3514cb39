// Package events holds the payloads published through the outbox and
// broadcast to clients. Payloads are snapshots, not deltas: clients that
// miss one reconcile by re-reading game state, so nothing here is
// load-bearing for correctness.
package events

import (
	"time"
)

// Event type names as stored in the outbox and used as NATS subjects.
const (
	TypePlayerJoined    = "PlayerJoined"
	TypeGameStarted     = "GameStarted"
	TypeRoundStarted    = "RoundStarted"
	TypeAnswerSubmitted = "AnswerSubmitted"
	TypeVotingStarted   = "VotingStarted"
	TypeVoteCast        = "VoteCast"
	TypeRoundScored     = "RoundScored"
	TypeGameCompleted   = "GameCompleted"
)

// PlayerJoinedPayload is published when a player enters the lobby.
type PlayerJoinedPayload struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	JoinedAt   time.Time `json:"joined_at"`
}

// GameStartedPayload is published when the host starts the game.
type GameStartedPayload struct {
	GameID      string    `json:"game_id"`
	TargetScore int       `json:"target_score"`
	MaxRounds   int       `json:"max_rounds"`
	StartedAt   time.Time `json:"started_at"`
}

// RoundStartedPayload is published when a round opens. CountdownSec is
// the advisory pre-round countdown; submission is open immediately.
type RoundStartedPayload struct {
	RoundID      string    `json:"round_id"`
	RoundNumber  int       `json:"round_number"`
	Letter       string    `json:"letter"`
	Categories   []string  `json:"categories"`
	CountdownSec int       `json:"countdown_sec"`
	StartedAt    time.Time `json:"started_at"`
}

// AnswerSubmittedPayload is published when a player's answers land.
// First is set on the submission that armed the grace timer.
type AnswerSubmittedPayload struct {
	RoundID     string    `json:"round_id"`
	PlayerID    string    `json:"player_id"`
	First       bool      `json:"first"`
	GraceSec    int       `json:"grace_sec,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// VotingStartedPayload is published when a round closes for answers.
type VotingStartedPayload struct {
	RoundID   string    `json:"round_id"`
	VotingSec int       `json:"voting_sec"`
	StartedAt time.Time `json:"started_at"`
}

// VoteCastPayload is published on every vote upsert.
type VoteCastPayload struct {
	RoundID         string    `json:"round_id"`
	Category        string    `json:"category"`
	SubjectPlayerID string    `json:"subject_player_id"`
	VoterPlayerID   string    `json:"voter_player_id"`
	IsValid         bool      `json:"is_valid"`
	CastAt          time.Time `json:"cast_at"`
}

// RoundScoredPayload is published after a round's deltas are applied.
type RoundScoredPayload struct {
	RoundID     string         `json:"round_id"`
	RoundNumber int            `json:"round_number"`
	Deltas      map[string]int `json:"deltas"`
	ScoredAt    time.Time      `json:"scored_at"`
}

// GameCompletedPayload is published when the game ends for any reason.
type GameCompletedPayload struct {
	GameID      string    `json:"game_id"`
	EndReason   string    `json:"end_reason"`
	CompletedAt time.Time `json:"completed_at"`
}
