// Package clock owns every time-driven trigger in the game: the
// advisory pre-round countdown, the post-first-finisher grace period,
// and the voting timeout. It knows nothing about game rules; when a
// timer fires it hands the round ID to a Handler, which re-validates
// current status before acting. A firing that lost its race is a no-op
// on the handler side.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Kind identifies one of the three timer kinds a round can carry.
type Kind string

const (
	KindCountdown Kind = "countdown"
	KindGrace     Kind = "grace"
	KindVoting    Kind = "voting"
)

// Handler receives timer firings. Implementations must treat a stale
// round or game status as already handled and do nothing.
type Handler interface {
	HandleCountdownFinished(ctx context.Context, roundID uuid.UUID)
	HandleGraceExpired(ctx context.Context, roundID uuid.UUID)
	HandleVotingExpired(ctx context.Context, roundID uuid.UUID)
}

// Config holds the fixed timer durations.
type Config struct {
	Countdown time.Duration
	Grace     time.Duration
	Voting    time.Duration
}

type timerKey struct {
	roundID uuid.UUID
	kind    Kind
}

// RoundClock schedules one-shot timers keyed by (round, kind). Arming a
// key that already has a live timer is a no-op, which makes the
// "first finisher arms the grace period" path safe when several
// submissions each believe they were first.
type RoundClock struct {
	clock   clockwork.Clock
	config  Config
	handler Handler
	ctx     context.Context

	mu     sync.Mutex
	timers map[timerKey]clockwork.Timer
}

// New creates a round clock. Pass clockwork.NewRealClock() in
// production and a fake clock in tests.
func New(cfg Config, clk clockwork.Clock) *RoundClock {
	return &RoundClock{
		clock:  clk,
		config: cfg,
		timers: make(map[timerKey]clockwork.Timer),
	}
}

// Start binds the handler and the lifetime context. Timers armed before
// Start are not supported; the coordinator is wired first, then Start
// is called, then traffic flows.
func (rc *RoundClock) Start(ctx context.Context, handler Handler) {
	rc.mu.Lock()
	rc.handler = handler
	rc.ctx = ctx
	rc.mu.Unlock()
	log.Info().
		Dur("countdown", rc.config.Countdown).
		Dur("grace", rc.config.Grace).
		Dur("voting", rc.config.Voting).
		Msg("round clock started")
}

// ArmCountdown schedules the advisory pre-round countdown.
func (rc *RoundClock) ArmCountdown(roundID uuid.UUID) {
	rc.arm(roundID, KindCountdown, rc.config.Countdown, func(ctx context.Context, id uuid.UUID) {
		rc.handler.HandleCountdownFinished(ctx, id)
	})
}

// ArmGrace schedules the round auto-close after the first submission.
// Re-arming while the timer is live is a no-op.
func (rc *RoundClock) ArmGrace(roundID uuid.UUID) {
	rc.arm(roundID, KindGrace, rc.config.Grace, func(ctx context.Context, id uuid.UUID) {
		rc.handler.HandleGraceExpired(ctx, id)
	})
}

// ArmVoting schedules the voting-phase timeout.
func (rc *RoundClock) ArmVoting(roundID uuid.UUID) {
	rc.arm(roundID, KindVoting, rc.config.Voting, func(ctx context.Context, id uuid.UUID) {
		rc.handler.HandleVotingExpired(ctx, id)
	})
}

func (rc *RoundClock) arm(roundID uuid.UUID, kind Kind, duration time.Duration, fire func(context.Context, uuid.UUID)) {
	if duration <= 0 {
		return
	}

	rc.mu.Lock()
	if rc.handler == nil || rc.ctx == nil {
		rc.mu.Unlock()
		log.Warn().Str("round_id", roundID.String()).Str("kind", string(kind)).Msg("arm before clock start, dropping timer")
		return
	}
	key := timerKey{roundID: roundID, kind: kind}
	if _, exists := rc.timers[key]; exists {
		rc.mu.Unlock()
		log.Debug().
			Str("round_id", roundID.String()).
			Str("kind", string(kind)).
			Msg("timer already armed, skipping")
		return
	}
	timer := rc.clock.NewTimer(duration)
	rc.timers[key] = timer
	ctx := rc.ctx
	rc.mu.Unlock()

	go func() {
		select {
		case <-timer.Chan():
			rc.removeTimer(key)
			fire(ctx, roundID)
		case <-ctx.Done():
			stopAndDrainTimer(timer)
			rc.removeTimer(key)
		}
	}()

	log.Debug().
		Str("round_id", roundID.String()).
		Str("kind", string(kind)).
		Dur("duration", duration).
		Msg("armed one-shot timer")
}

// CancelRound stops every live timer for a round. Fired-but-unhandled
// timers are covered by the handler's status re-check instead.
func (rc *RoundClock) CancelRound(roundID uuid.UUID) {
	for _, kind := range []Kind{KindCountdown, KindGrace, KindVoting} {
		rc.cancel(timerKey{roundID: roundID, kind: kind})
	}
}

// Cancel stops one timer kind for a round.
func (rc *RoundClock) Cancel(roundID uuid.UUID, kind Kind) {
	rc.cancel(timerKey{roundID: roundID, kind: kind})
}

func (rc *RoundClock) cancel(key timerKey) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if timer, exists := rc.timers[key]; exists {
		stopAndDrainTimer(timer)
		delete(rc.timers, key)
		log.Debug().
			Str("round_id", key.roundID.String()).
			Str("kind", string(key.kind)).
			Msg("cancelled timer")
	}
}

func (rc *RoundClock) removeTimer(key timerKey) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	delete(rc.timers, key)
}

// Armed reports whether a timer is currently scheduled.
func (rc *RoundClock) Armed(roundID uuid.UUID, kind Kind) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	_, ok := rc.timers[timerKey{roundID: roundID, kind: kind}]
	return ok
}

// stopAndDrainTimer stops a timer and drains its channel so the firing
// goroutine cannot leak, per the time.Timer.Stop documentation.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
