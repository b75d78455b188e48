// Package ratelimit serializes verification-code resends. The redis limiter
// keeps the guarantee across service instances; the local limiter is the
// single-instance fallback. Both are advisory: the repository's conditional
// code_sent_at update remains the final arbiter.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// ResendLimiter claims a one-per-window slot for a key.
type ResendLimiter interface {
	// Reserve returns 0 when the slot was claimed, otherwise how long the
	// caller must wait before retrying.
	Reserve(ctx context.Context, key string, window time.Duration) (time.Duration, error)

	// Release frees a claimed slot early, so a failed send does not burn
	// the whole window.
	Release(ctx context.Context, key string) error
}

// LocalLimiter is an in-process ResendLimiter.
type LocalLimiter struct {
	mu    sync.Mutex
	slots map[string]time.Time
	now   func() time.Time
}

func NewLocalLimiter() *LocalLimiter {
	return &LocalLimiter{
		slots: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (l *LocalLimiter) Reserve(_ context.Context, key string, window time.Duration) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if expiry, ok := l.slots[key]; ok && now.Before(expiry) {
		return expiry.Sub(now), nil
	}

	// Drop stale entries so the map does not grow unbounded.
	for k, expiry := range l.slots {
		if now.After(expiry) {
			delete(l.slots, k)
		}
	}

	l.slots[key] = now.Add(window)
	return 0, nil
}

func (l *LocalLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.slots, key)
	return nil
}
