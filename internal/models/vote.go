package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one voter's validity judgment of one subject's answer in one
// category. The (round, category, subject, voter) key is unique; a later
// vote from the same voter replaces the earlier one.
type Vote struct {
	RoundID         uuid.UUID `json:"round_id"`
	Category        string    `json:"category"`
	SubjectPlayerID uuid.UUID `json:"subject_player_id"`
	VoterPlayerID   uuid.UUID `json:"voter_player_id"`
	IsValid         bool      `json:"is_valid"`
	CreatedAt       time.Time `json:"created_at"`
}
