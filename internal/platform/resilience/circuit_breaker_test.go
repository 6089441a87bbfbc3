package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      10 * time.Second,
		HalfOpenMaxReq:   2,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newTestBreaker(&now)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("closed breaker rejected request %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", b.State())
	}
}

func TestCircuitBreaker_HalfOpenProbesThenCloses(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newTestBreaker(&now)

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	now = now.Add(11 * time.Second)

	// Cooldown elapsed: limited probes allowed.
	if err := b.Allow(); err != nil {
		t.Fatalf("first probe rejected: %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("second probe rejected: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatal("third concurrent probe should be rejected")
	}

	b.RecordSuccess()
	b.RecordSuccess()

	if b.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe successes, got %s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker rejected request: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newTestBreaker(&now)

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	now = now.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe rejected: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatal("failed probe must reopen the circuit")
	}
}

func TestNormalizeCircuitBreakerConfig_FillsDefaults(t *testing.T) {
	t.Parallel()

	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != want.FailureThreshold || got.OpenTimeout != want.OpenTimeout || got.HalfOpenMaxReq != want.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", got)
	}
}
