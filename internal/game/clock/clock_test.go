package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type recordingHandler struct {
	mu        sync.Mutex
	countdown []uuid.UUID
	grace     []uuid.UUID
	voting    []uuid.UUID
	fired     chan Kind
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{fired: make(chan Kind, 16)}
}

func (h *recordingHandler) HandleCountdownFinished(_ context.Context, roundID uuid.UUID) {
	h.mu.Lock()
	h.countdown = append(h.countdown, roundID)
	h.mu.Unlock()
	h.fired <- KindCountdown
}

func (h *recordingHandler) HandleGraceExpired(_ context.Context, roundID uuid.UUID) {
	h.mu.Lock()
	h.grace = append(h.grace, roundID)
	h.mu.Unlock()
	h.fired <- KindGrace
}

func (h *recordingHandler) HandleVotingExpired(_ context.Context, roundID uuid.UUID) {
	h.mu.Lock()
	h.voting = append(h.voting, roundID)
	h.mu.Unlock()
	h.fired <- KindVoting
}

func (h *recordingHandler) waitForFire(t *testing.T) Kind {
	t.Helper()
	select {
	case kind := <-h.fired:
		return kind
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for timer to fire")
		return ""
	}
}

func (h *recordingHandler) graceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.grace)
}

func newTestClock(t *testing.T) (*RoundClock, *clockwork.FakeClock, *recordingHandler) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	rc := New(Config{
		Countdown: 5 * time.Second,
		Grace:     30 * time.Second,
		Voting:    60 * time.Second,
	}, fc)
	handler := newRecordingHandler()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rc.Start(ctx, handler)
	return rc, fc, handler
}

func TestGraceFiresAfterDuration(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	roundID := uuid.New()

	rc.ArmGrace(roundID)
	fc.BlockUntil(1)

	fc.Advance(29 * time.Second)
	select {
	case <-handler.fired:
		t.Fatal("grace timer fired before its duration elapsed")
	case <-time.After(50 * time.Millisecond):
	}

	fc.Advance(time.Second)
	if kind := handler.waitForFire(t); kind != KindGrace {
		t.Fatalf("expected grace firing, got %s", kind)
	}
	handler.mu.Lock()
	got := handler.grace[0]
	handler.mu.Unlock()
	if got != roundID {
		t.Fatalf("fired with round %s, want %s", got, roundID)
	}
}

func TestArmGraceIsIdempotent(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	roundID := uuid.New()

	rc.ArmGrace(roundID)
	fc.BlockUntil(1)
	rc.ArmGrace(roundID)
	rc.ArmGrace(roundID)

	fc.Advance(30 * time.Second)
	handler.waitForFire(t)

	// Only one live timer should ever have existed.
	select {
	case <-handler.fired:
		t.Fatal("duplicate arm produced a second firing")
	case <-time.After(50 * time.Millisecond):
	}
	if handler.graceCount() != 1 {
		t.Fatalf("grace fired %d times, want 1", handler.graceCount())
	}
}

func TestRearmAfterFireIsAllowed(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	roundID := uuid.New()

	rc.ArmGrace(roundID)
	fc.BlockUntil(1)
	fc.Advance(30 * time.Second)
	handler.waitForFire(t)

	rc.ArmGrace(roundID)
	fc.BlockUntil(1)
	fc.Advance(30 * time.Second)
	handler.waitForFire(t)

	if handler.graceCount() != 2 {
		t.Fatalf("grace fired %d times, want 2", handler.graceCount())
	}
}

func TestCancelRoundStopsAllKinds(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	roundID := uuid.New()

	rc.ArmCountdown(roundID)
	rc.ArmGrace(roundID)
	rc.ArmVoting(roundID)
	fc.BlockUntil(3)

	rc.CancelRound(roundID)
	if rc.Armed(roundID, KindCountdown) || rc.Armed(roundID, KindGrace) || rc.Armed(roundID, KindVoting) {
		t.Fatal("timers still armed after CancelRound")
	}

	fc.Advance(2 * time.Minute)
	select {
	case kind := <-handler.fired:
		t.Fatalf("cancelled timer fired: %s", kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelOnlyAffectsTargetRound(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	cancelled := uuid.New()
	kept := uuid.New()

	rc.ArmVoting(cancelled)
	rc.ArmVoting(kept)
	fc.BlockUntil(2)

	rc.CancelRound(cancelled)
	fc.Advance(60 * time.Second)

	if kind := handler.waitForFire(t); kind != KindVoting {
		t.Fatalf("expected voting firing, got %s", kind)
	}
	handler.mu.Lock()
	got := handler.voting
	handler.mu.Unlock()
	if len(got) != 1 || got[0] != kept {
		t.Fatalf("voting firings = %v, want exactly [%s]", got, kept)
	}
}

func TestTimerKindsAreIndependent(t *testing.T) {
	rc, fc, handler := newTestClock(t)
	roundID := uuid.New()

	rc.ArmCountdown(roundID)
	rc.ArmGrace(roundID)
	fc.BlockUntil(2)

	fc.Advance(5 * time.Second)
	if kind := handler.waitForFire(t); kind != KindCountdown {
		t.Fatalf("expected countdown first, got %s", kind)
	}
	if !rc.Armed(roundID, KindGrace) {
		t.Fatal("grace timer should survive countdown firing")
	}

	fc.Advance(25 * time.Second)
	if kind := handler.waitForFire(t); kind != KindGrace {
		t.Fatalf("expected grace second, got %s", kind)
	}
}

func TestArmBeforeStartIsDropped(t *testing.T) {
	fc := clockwork.NewFakeClock()
	rc := New(Config{Grace: 30 * time.Second}, fc)

	roundID := uuid.New()
	rc.ArmGrace(roundID)
	if rc.Armed(roundID, KindGrace) {
		t.Fatal("no timer should be armed before Start")
	}
}
