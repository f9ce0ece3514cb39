package gateway

import (
	"encoding/json"
	"time"

	"github.com/mcdev12/stopgame/internal/game/events"
)

// GameEvent is the wire format pushed to WebSocket clients. Data is the
// outbox payload passed through untouched.
type GameEvent struct {
	ID        string          `json:"id"`
	GameID    string          `json:"game_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

var knownEventTypes = map[string]struct{}{
	events.TypePlayerJoined:    {},
	events.TypeGameStarted:     {},
	events.TypeRoundStarted:    {},
	events.TypeAnswerSubmitted: {},
	events.TypeVotingStarted:   {},
	events.TypeVoteCast:        {},
	events.TypeRoundScored:     {},
	events.TypeGameCompleted:   {},
}

// KnownEventType reports whether t is an event type clients understand.
func KnownEventType(t string) bool {
	_, ok := knownEventTypes[t]
	return ok
}
