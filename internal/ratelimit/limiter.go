// Package ratelimit spaces outbound calls to external services so a burst
// of adapter fetches cannot trip provider throttling.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const DefaultInterval = 1000 * time.Millisecond

// Limiter enforces a minimum interval between calls sharing a service key.
// Keys are independent: waiting on one never delays another.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     map[string]time.Time
}

func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		next:     make(map[string]time.Time),
	}
}

// Wait blocks until the caller may proceed for the given key. The first
// call for a key returns immediately. Concurrent callers for the same key
// each reserve their own slot under the lock, so two of them can never
// both decide "no wait needed" from a stale timestamp.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	now := time.Now()
	at := l.next[key]
	if at.Before(now) {
		at = now
	}
	l.next[key] = at.Add(l.interval)
	l.mu.Unlock()

	wait := at.Sub(now)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
