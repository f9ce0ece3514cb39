package models

import (
	"time"

	"github.com/google/uuid"
)

// RoundStatus defines the lifecycle status of a round. Status only moves
// forward: active -> voting -> scored.
type RoundStatus string

const (
	RoundStatusActive RoundStatus = "active"
	RoundStatusVoting RoundStatus = "voting"
	RoundStatusScored RoundStatus = "scored"
)

// Round is one timed play unit: a letter, an ordered category list, and
// the answer/voting/scoring lifecycle around it. At most one round per
// game is active or voting at any time.
type Round struct {
	ID          uuid.UUID   `json:"id"`
	GameID      uuid.UUID   `json:"game_id"`
	RoundNumber int         `json:"round_number"`
	Letter      string      `json:"letter"`
	Categories  []string    `json:"categories"`
	Status      RoundStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// HasCategory reports whether name is one of the round's categories.
func (r *Round) HasCategory(name string) bool {
	for _, c := range r.Categories {
		if c == name {
			return true
		}
	}
	return false
}
