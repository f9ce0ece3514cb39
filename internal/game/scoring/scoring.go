// Package scoring computes per-player point deltas for a closed round.
// The engine is a pure function of the round's answers, votes, and
// roster size: it is deterministic and does not depend on input
// ordering.
package scoring

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/models"
)

// Rules parameterizes the point values and the validity-tie policy. The
// authoritative formula lives server-side in the original game and was
// never published, so every knob is configuration rather than a constant.
type Rules struct {
	// UniquePoints is awarded for a valid answer no other player gave.
	UniquePoints int
	// DuplicatePoints is awarded for a valid answer shared with another
	// player (compared case-insensitively after trimming).
	DuplicatePoints int
	// TieIsValid resolves vote ties after abstainers are counted as
	// accepting the answer.
	TieIsValid bool
}

// DefaultRules returns the observed stock values: 10 for unique, 5 for
// duplicated, ties favor valid.
func DefaultRules() Rules {
	return Rules{UniquePoints: 10, DuplicatePoints: 5, TieIsValid: true}
}

// Engine scores closed rounds.
type Engine struct {
	rules Rules
}

// NewEngine creates a scoring engine with the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

type voteTally struct {
	valid   int
	invalid int
}

// Score computes the point delta for every player that has an answer row
// in the round. Blank answers score zero. A non-blank answer scores only
// if the crowd's majority verdict for that (category, subject) pair is
// valid; among valid answers, unique ones outscore duplicated ones.
//
// playerCount is the game's roster size. Every player other than the
// subject is an eligible voter, and an eligible voter who cast no vote
// on a pair counts as an implicit valid vote, so an answer nobody
// objected to always stands.
func (e *Engine) Score(round *models.Round, answers []models.Answer, votes []models.Vote, playerCount int) map[uuid.UUID]int {
	eligible := playerCount - 1
	if eligible < 0 {
		eligible = 0
	}

	deltas := make(map[uuid.UUID]int, len(answers))
	for _, a := range answers {
		deltas[a.PlayerID] = 0
	}

	tallies := make(map[string]map[uuid.UUID]voteTally)
	for _, v := range votes {
		bySubject := tallies[v.Category]
		if bySubject == nil {
			bySubject = make(map[uuid.UUID]voteTally)
			tallies[v.Category] = bySubject
		}
		t := bySubject[v.SubjectPlayerID]
		if v.IsValid {
			t.valid++
		} else {
			t.invalid++
		}
		bySubject[v.SubjectPlayerID] = t
	}

	for _, category := range round.Categories {
		type entry struct {
			playerID   uuid.UUID
			normalized string
		}
		var valid []entry
		counts := make(map[string]int)

		for _, a := range answers {
			text := strings.TrimSpace(a.Text(category))
			if text == "" {
				continue
			}
			if !e.verdict(tallies[category][a.PlayerID], eligible) {
				continue
			}
			normalized := strings.ToLower(text)
			valid = append(valid, entry{playerID: a.PlayerID, normalized: normalized})
			counts[normalized]++
		}

		for _, ve := range valid {
			if counts[ve.normalized] == 1 {
				deltas[ve.playerID] += e.rules.UniquePoints
			} else {
				deltas[ve.playerID] += e.rules.DuplicatePoints
			}
		}
	}

	return deltas
}

// verdict decides validity from the cast votes plus the implicit valid
// votes of eligible voters who abstained.
func (e *Engine) verdict(t voteTally, eligible int) bool {
	abstained := eligible - t.valid - t.invalid
	if abstained < 0 {
		abstained = 0
	}
	valid := t.valid + abstained
	if valid == t.invalid {
		return e.rules.TieIsValid
	}
	return valid > t.invalid
}
