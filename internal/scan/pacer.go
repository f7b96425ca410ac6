package scan

import (
	"context"
	"sync"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pacer spaces calls sharing a key at least interval apart. Slots are
// reserved under the lock, so concurrent callers queue behind each other.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     map[string]time.Time
	now      func() time.Time
	sleep    SleepFunc
}

// NewPacer returns a Pacer for interval. A nil sleep uses SleepWithContext.
func NewPacer(interval time.Duration, sleep SleepFunc) *Pacer {
	if sleep == nil {
		sleep = SleepWithContext
	}
	return &Pacer{
		interval: interval,
		next:     make(map[string]time.Time),
		now:      time.Now,
		sleep:    sleep,
	}
}

// Wait blocks until key may be called again.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	p.mu.Lock()
	now := p.now()
	at := p.next[key]
	if at.Before(now) {
		at = now
	}
	p.next[key] = at.Add(p.interval)
	p.mu.Unlock()

	if wait := at.Sub(now); wait > 0 {
		return p.sleep(ctx, wait)
	}
	return ctx.Err()
}
