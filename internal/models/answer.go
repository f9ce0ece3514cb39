package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerSet maps a category name to the submitted answer text.
type AnswerSet map[string]string

// Answer holds one player's submitted answers for a round. There is at
// most one answer row per (round, player); rows are immutable once
// written. A nil AnswerSet means the row was force-created blank when
// the round closed before the player submitted.
type Answer struct {
	RoundID   uuid.UUID `json:"round_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Answers   AnswerSet `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}

// Text returns the trimmed answer for a category, or "" when the player
// left it blank or never submitted.
func (a *Answer) Text(category string) string {
	if a.Answers == nil {
		return ""
	}
	return a.Answers[category]
}
