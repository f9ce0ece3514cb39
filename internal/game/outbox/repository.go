package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/stopgame/internal/game/db"
)

type Repository struct {
	queries *db.Queries
}

func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// InsertEvent appends an event to the outbox. It rides whatever
// transaction the queries are bound to, so the event commits atomically
// with the state change it describes.
func (r *Repository) InsertEvent(ctx context.Context, gameID uuid.UUID, eventType string, payload []byte) error {
	err := r.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        uuid.New(),
		GameID:    gameID,
		EventType: eventType,
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// FetchUnsent claims up to limit undelivered events.
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.queries.FetchUnsentOutboxEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	events := make([]Event, len(rows))
	for i, row := range rows {
		events[i] = Event{
			ID:        row.ID,
			GameID:    row.GameID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		}
		if row.SentAt.Valid {
			sent := row.SentAt.Time
			events[i].SentAt = &sent
		}
	}
	return events, nil
}

// MarkSent records successful delivery of one event.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxEventSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event sent: %w", err)
	}
	return nil
}
