package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

// flaky returns a call that fails with a transient error until it has been
// invoked n times.
func flaky(n int, calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		if *calls < n {
			return NewTransientError(errors.New("temporary"), 503)
		}
		return nil
	}
}

func TestDo_FirstTrySucceeds(t *testing.T) {
	calls := 0
	if err := Do(context.Background(), DefaultRetryConfig(), flaky(1, &calls)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("want 1 call, got %d", calls)
	}
}

func TestDo_RecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	if err := Do(context.Background(), fastRetry(3), flaky(3, &calls)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("want 3 calls, got %d", calls)
	}
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		return NewTransientError(errors.New("still down"), 500)
	})
	if err == nil {
		t.Fatal("want error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("want 3 calls, got %d", calls)
	}
}

func TestDo_PermanentErrorFailsFast(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		return errors.New("bad request")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 1 {
		t.Errorf("want 1 call, got %d", calls)
	}
}

func TestDo_SingleAttemptNeverSleeps(t *testing.T) {
	start := time.Now()
	err := Do(context.Background(), RetryConfig{MaxAttempts: 1, InitialBackoff: time.Hour}, func(context.Context) error {
		return NewTransientError(errors.New("nope"), 503)
	})
	if err == nil {
		t.Fatal("want error")
	}
	if time.Since(start) > time.Second {
		t.Error("single attempt must not back off")
	}
}

func TestDo_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, fastRetry(5), func(context.Context) error {
		calls++
		cancel()
		return NewTransientError(errors.New("temporary"), 503)
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 1 {
		t.Errorf("want 1 call, got %d", calls)
	}
}

func TestDoVal_ReturnsValue(t *testing.T) {
	calls := 0
	got, err := DoVal(context.Background(), fastRetry(3), func(context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", NewTransientError(errors.New("temporary"), 429)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("want %q, got %q", "ok", got)
	}
}

func TestDo_ShouldRetryOverride(t *testing.T) {
	cfg := fastRetry(3)
	cfg.ShouldRetry = func(error) bool { return true }

	calls := 0
	err := Do(context.Background(), cfg, func(context.Context) error {
		calls++
		return errors.New("normally permanent")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 3 {
		t.Errorf("want 3 calls, got %d", calls)
	}
}

func TestDo_OnRetryReportsAttempts(t *testing.T) {
	cfg := fastRetry(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, _ error) {
		attempts = append(attempts, attempt)
	}

	_ = Do(context.Background(), cfg, func(context.Context) error {
		return NewTransientError(errors.New("temporary"), 503)
	})
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("unexpected attempt numbers: %v", attempts)
	}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	cfg := applyDefaults(RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		Multiplier:     2.0,
	})

	for _, tc := range []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{5, 300 * time.Millisecond},
	} {
		if got := backoff(tc.attempt, cfg); got != tc.want {
			t.Errorf("attempt %d: want %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestBackoff_JitterStaysInRange(t *testing.T) {
	cfg := applyDefaults(RetryConfig{
		InitialBackoff: time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.5,
	})

	distinct := map[time.Duration]bool{}
	for i := 0; i < 100; i++ {
		d := backoff(0, cfg)
		distinct[d] = true
		if d < 500*time.Millisecond || d > 1500*time.Millisecond {
			t.Fatalf("delay %v outside [500ms, 1500ms]", d)
		}
	}
	if len(distinct) < 2 {
		t.Error("want varying delays with jitter enabled")
	}
}

func TestRetryLogger_DoesNotPanic(t *testing.T) {
	RetryLogger("salesforce", "insert_leads")(1, errors.New("boom"))
}
