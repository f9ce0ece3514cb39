package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a participant in a game. Score is non-negative and
// only ever increases, and only when a round is scored.
type Player struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"game_id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
