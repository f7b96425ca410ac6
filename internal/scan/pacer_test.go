package scan

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacerSpacesSameKey(t *testing.T) {
	var waits []time.Duration
	pacer := NewPacer(time.Second, func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pacer.now = func() time.Time { return base }

	for _, key := range []string{"ATH", "BLU", "ATH", "ATH"} {
		if err := pacer.Wait(context.Background(), key); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
	if len(waits) != 2 || waits[0] != time.Second || waits[1] != 2*time.Second {
		t.Fatalf("unexpected waits %v", waits)
	}
}

func TestPacerNoWaitAfterInterval(t *testing.T) {
	calls := 0
	pacer := NewPacer(time.Second, func(context.Context, time.Duration) error {
		calls++
		return nil
	})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pacer.now = func() time.Time { return now }

	_ = pacer.Wait(context.Background(), "ATH")
	now = now.Add(2 * time.Second)
	_ = pacer.Wait(context.Background(), "ATH")
	if calls != 0 {
		t.Fatalf("expected no sleeps, got %d", calls)
	}
}

func TestSleepWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := SleepWithContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if err := SleepWithContext(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep returned %v", err)
	}
}
