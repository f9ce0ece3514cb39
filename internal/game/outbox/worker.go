package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/stopgame/internal/game/db"
	"github.com/mcdev12/stopgame/internal/sqlutil"
)

type Config struct {
	PollInterval time.Duration
	BatchSize    int32
}

func DefaultConfig() Config {
	return Config{
		PollInterval: time.Second,
		BatchSize:    100,
	}
}

// Worker relays committed outbox rows to the publisher. Claims run in a
// transaction with FOR UPDATE SKIP LOCKED, so multiple workers never
// double-claim a row; delivery is at-least-once and consumers dedupe on
// event ID.
type Worker struct {
	db        *sql.DB
	publisher EventPublisher
	config    Config

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWorker(database *sql.DB, publisher EventPublisher, cfg Config) *Worker {
	return &Worker{
		db:        database,
		publisher: publisher,
		config:    cfg,
		stopChan:  make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().
		Dur("poll_interval", w.config.PollInterval).
		Int32("batch_size", w.config.BatchSize).
		Msg("outbox worker started")
	return nil
}

func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	log.Info().Msg("outbox worker stopped")
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			if err := w.relayBatch(ctx); err != nil {
				log.Error().Err(err).Msg("outbox relay batch failed")
			}
		}
	}
}

func (w *Worker) relayBatch(ctx context.Context) error {
	return sqlutil.Run(ctx, w.db, db.New(w.db).WithTx, func(q *db.Queries) error {
		repo := NewRepository(q)

		pending, err := repo.FetchUnsent(ctx, w.config.BatchSize)
		if err != nil {
			return err
		}

		for _, event := range pending {
			if err := w.publisher.Publish(ctx, event); err != nil {
				// Leave the row unsent; the next poll retries it.
				return fmt.Errorf("publish event %s: %w", event.ID, err)
			}
			if err := repo.MarkSent(ctx, event.ID); err != nil {
				return err
			}
		}

		if len(pending) > 0 {
			log.Debug().Int("count", len(pending)).Msg("relayed outbox events")
		}
		return nil
	})
}
